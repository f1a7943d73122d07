// Package winternitz implements the one-time signature scheme that
// binds a prover to the boundary states it publishes. Messages are
// 31-bit values split into 4-bit digits; each digit is signed with a
// hash160 chain, and two extra digits carry a checksum so a signature
// cannot be mauled into one for a larger message.
package winternitz

import (
	"io"

	"github.com/btcsuite/btcd/btcutil"

	"github.com/distributed-lab/bitvm2-splitter/errors"
)

const (
	// D is the largest digit value. Digits are 4 bits wide.
	D            = 15
	bitsPerDigit = 4

	// MsgBits is the width of a signable message. One bit short of 32
	// so every message is representable as a non-negative script
	// number.
	MsgBits = 31

	// N0 is the number of message digits, N1 the number of checksum
	// digits, N the total.
	N0 = 8
	N1 = 2
	N  = N0 + N1

	// DigestLen is the length of a hash160 chain element.
	DigestLen = 20

	// MaxMessage is the largest signable value.
	MaxMessage = 1<<MsgBits - 1
)

// ErrMessageTooLarge is returned when a value does not fit in MsgBits
// bits and therefore cannot be committed to.
var ErrMessageTooLarge = errors.New("message exceeds 31 bits")

// SecretKey is one random chunk per digit.
type SecretKey [N][DigestLen]byte

// PublicKey is each secret chunk hashed D times.
type PublicKey [N][DigestLen]byte

// Message is the digit decomposition of a value, checksum digits
// included. Digit 0 is the least significant.
type Message [N]uint8

// SigChunk is one digit's part of a signature: the secret chunk
// hashed Times times, where Times is the digit value.
type SigChunk struct {
	Times  uint8
	Digest [DigestLen]byte
}

// Signature holds one chunk per digit.
type Signature [N]SigChunk

// GenerateKey draws a fresh secret key from rand.
func GenerateKey(rand io.Reader) (SecretKey, error) {
	var sk SecretKey
	for i := range sk {
		_, err := io.ReadFull(rand, sk[i][:])
		if err != nil {
			return SecretKey{}, errors.Wrap(err, "reading key material")
		}
	}
	return sk, nil
}

// GenerateStateKeys draws one key pair per state element.
func GenerateStateKeys(rand io.Reader, n int) ([]SecretKey, []PublicKey, error) {
	sks := make([]SecretKey, n)
	pks := make([]PublicKey, n)
	for i := 0; i < n; i++ {
		sk, err := GenerateKey(rand)
		if err != nil {
			return nil, nil, err
		}
		sks[i] = sk
		pks[i] = sk.PublicKey()
	}
	return sks, pks, nil
}

// PublicKey derives the public key by hashing every chunk D times.
func (sk SecretKey) PublicKey() PublicKey {
	var pk PublicKey
	for i := range sk {
		chunk := sk[i]
		for j := 0; j < D; j++ {
			chunk = hash160(chunk[:])
		}
		pk[i] = chunk
	}
	return pk
}

// Sign hashes each secret chunk as many times as the corresponding
// message digit.
func (sk SecretKey) Sign(msg Message) Signature {
	var sig Signature
	for i := range sk {
		chunk := sk[i]
		for j := uint8(0); j < msg[i]; j++ {
			chunk = hash160(chunk[:])
		}
		sig[i] = SigChunk{Times: msg[i], Digest: chunk}
	}
	return sig
}

// Verify completes each signature chunk's hash chain to D and
// compares it against the public key.
func (pk PublicKey) Verify(msg Message, sig Signature) bool {
	for i := range pk {
		chunk := sig[i].Digest
		for j := msg[i]; j < D; j++ {
			chunk = hash160(chunk[:])
		}
		if chunk != pk[i] {
			return false
		}
	}
	return true
}

// NewMessage splits v into 4-bit digits, least significant first, and
// appends the two checksum digits.
func NewMessage(v uint32) (Message, error) {
	if v > MaxMessage {
		return Message{}, errors.WithDetailf(ErrMessageTooLarge, "value %d", v)
	}

	var msg Message
	var sum uint16
	for i := 0; i < N0; i++ {
		msg[i] = uint8(v & 0x0f)
		sum += uint16(msg[i])
		v >>= bitsPerDigit
	}

	checksum := uint16(D*N0) - sum
	msg[N0] = uint8(checksum & 0x0f)
	msg[N0+1] = uint8(checksum >> bitsPerDigit)
	return msg, nil
}

// Uint32 recovers the value the message was built from.
func (msg Message) Uint32() uint32 {
	var v uint32
	for i := 0; i < N0; i++ {
		v |= uint32(msg[i]) << (bitsPerDigit * uint(i))
	}
	return v
}

func hash160(b []byte) [DigestLen]byte {
	var d [DigestLen]byte
	copy(d[:], btcutil.Hash160(b))
	return d
}
