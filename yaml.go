package stato

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// LoadDeclaration reads one YAML declaration document from r.
//
// Only the structural fields load from YAML: the model name, the initial
// state, and the transition pairs. Guards and actions hold code and are
// bound afterwards, typically via FromDeclaration:
//
//	decl, err := stato.LoadDeclaration(f)
//	...
//	model, err := stato.FromDeclaration(decl).
//	    Guard("on", hasElectricity).
//	    Build()
//
// Unknown fields are rejected, so a misspelled key fails at load time
// instead of silently compiling a wrong machine.
func LoadDeclaration(r io.Reader) (Declaration, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var decl Declaration
	if err := dec.Decode(&decl); err != nil {
		if errors.Is(err, io.EOF) {
			return Declaration{}, errors.New("declaration document is empty")
		}
		return Declaration{}, fmt.Errorf("decode declaration: %w", err)
	}
	return decl, nil
}

// ParseDeclaration decodes a YAML declaration held in data.
func ParseDeclaration(data []byte) (Declaration, error) {
	return LoadDeclaration(bytes.NewReader(data))
}
