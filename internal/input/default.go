package input

import (
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
)

// record is the fixed size layout of a GameInput in a raw input dump.
type record struct {
	Time    float64
	Action  uint8
	Button  uint8
	_       [2]byte
	Integer int32
	Axis    float32
}

// ReadInputs decodes a raw input dump until EOF.
func ReadInputs(r io.Reader) ([]GameInput, error) {
	inputs := []GameInput{}
	var rec record
	for {
		err := binary.Read(r, binary.LittleEndian, &rec)
		if err == io.EOF {
			return inputs, nil
		}
		if nil != err {
			return inputs, errors.Wrapf(err, "unable to read input %d", len(inputs))
		}
		inputs = append(inputs, GameInput{
			Time:    rec.Time,
			Action:  Action(rec.Action),
			Button:  rec.Button != 0,
			Integer: rec.Integer,
			Axis:    rec.Axis,
		})
	}
}

// WriteInputs encodes inputs as a raw input dump.
func WriteInputs(w io.Writer, inputs []GameInput) error {
	for i, in := range inputs {
		rec := record{
			Time:    in.Time,
			Action:  uint8(in.Action),
			Integer: in.Integer,
			Axis:    in.Axis,
		}
		if in.Button {
			rec.Button = 1
		}
		if err := binary.Write(w, binary.LittleEndian, &rec); nil != err {
			return errors.Wrapf(err, "unable to write input %d", i)
		}
	}
	return nil
}
