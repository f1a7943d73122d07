package disprove

import (
	"io"

	"github.com/distributed-lab/bitvm2-splitter/errors"
	"github.com/distributed-lab/bitvm2-splitter/split"
	"github.com/distributed-lab/bitvm2-splitter/winternitz"
)

// Prover side of the commitment scheme: issuing keys for a plan and
// producing the witness a challenger supplies when spending a
// disprove script.

// IssueKeys draws one key pair per element of every boundary state
// and pairs the public halves up per shard: shard i references the
// keys of z_i and z_{i+1}, so adjacent shards share a boundary's
// keys. secrets[i] holds the secret keys for plan.States[i].
func IssueKeys(rand io.Reader, plan *split.Plan) (secrets [][]winternitz.SecretKey, pairs []KeyPair, err error) {
	secrets = make([][]winternitz.SecretKey, len(plan.States))
	pubs := make([]StateKeys, len(plan.States))
	for i, st := range plan.States {
		sks, pks, err := winternitz.GenerateStateKeys(rand, len(st))
		if err != nil {
			return nil, nil, errors.Wrapf(err, "issuing keys for state %d", i)
		}
		secrets[i] = sks
		pubs[i] = pks
	}

	pairs = make([]KeyPair, len(plan.Shards))
	for i := range plan.Shards {
		pairs[i] = KeyPair{Entry: pubs[i], Exit: pubs[i+1]}
	}
	return secrets, pairs, nil
}

// SignState signs every element of state with the corresponding
// secret key and returns the witness elements in the order the
// disprove script's verification loop consumes them: element 0's
// signature deepest, each signature as its chunk pairs with digit 0
// ending on top.
func SignState(sks []winternitz.SecretKey, state split.StackState) ([][]byte, error) {
	if len(sks) != len(state) {
		return nil, errors.WithDetailf(ErrKeyCountMismatch, "%d keys for %d state elements", len(sks), len(state))
	}
	vals, err := limbValues(state)
	if err != nil {
		return nil, err
	}

	var elems [][]byte
	for j, v := range vals {
		msg, err := winternitz.NewMessage(v)
		if err != nil {
			return nil, errors.Wrapf(err, "element %d", j)
		}
		elems = append(elems, sks[j].Sign(msg).WitnessElements()...)
	}
	return elems, nil
}

// Witness assembles the full witness stack for one disprove script:
// the entry state's signatures with the exit state's above them.
func Witness(entrySKs, exitSKs []winternitz.SecretKey, entry, exit split.StackState) ([][]byte, error) {
	w, err := SignState(entrySKs, entry)
	if err != nil {
		return nil, errors.Wrap(err, "entry state")
	}
	we, err := SignState(exitSKs, exit)
	if err != nil {
		return nil, errors.Wrap(err, "exit state")
	}
	return append(w, we...), nil
}
