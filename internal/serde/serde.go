// Package serde implements crm.Parser over interchangeable JSON engines.
package serde

import (
	"fmt"

	"github.com/fivetwenty-io/crm-client/pkg/crm"
)

// Engine is a JSON codec.
type Engine interface {
	Name() string
	Marshal(value interface{}) ([]byte, error)
	Unmarshal(data []byte, target interface{}) error
}

// Facade adapts an Engine to crm.Parser and reports every engine failure as
// a Parse error.
type Facade struct {
	engine Engine
}

// NewFacade creates a parser around engine.
func NewFacade(engine Engine) *Facade {
	return &Facade{engine: engine}
}

// Engine returns the underlying codec.
func (f *Facade) Engine() Engine {
	return f.engine
}

// ObjectToJSONString implements crm.Parser.
func (f *Facade) ObjectToJSONString(value interface{}) (string, error) {
	data, err := f.engine.Marshal(value)
	if err != nil {
		return "", crm.NewParseError(fmt.Sprintf("%s: encoding %T", f.engine.Name(), value), err)
	}

	return string(data), nil
}

// JSONStringToObject implements crm.Parser.
func (f *Facade) JSONStringToObject(data string, target interface{}) error {
	if target == nil {
		return crm.NewInvalidArgumentError("decode target is required")
	}

	err := f.engine.Unmarshal([]byte(data), target)
	if err != nil {
		return crm.NewParseError(fmt.Sprintf("%s: decoding into %T", f.engine.Name(), target), err)
	}

	return nil
}
