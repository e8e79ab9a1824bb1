package serde

import (
	"encoding/json"

	"github.com/bytedance/sonic"
	gojson "github.com/goccy/go-json"
)

// Engine names.
const (
	EngineJSON   = "json"
	EngineSonic  = "sonic"
	EngineGoJSON = "gojson"
)

type stdEngine struct{}

func (stdEngine) Name() string { return EngineJSON }

func (stdEngine) Marshal(value interface{}) ([]byte, error) {
	return json.Marshal(value)
}

func (stdEngine) Unmarshal(data []byte, target interface{}) error {
	return json.Unmarshal(data, target)
}

type sonicEngine struct {
	api sonic.API
}

func (sonicEngine) Name() string { return EngineSonic }

func (e sonicEngine) Marshal(value interface{}) ([]byte, error) {
	return e.api.Marshal(value)
}

func (e sonicEngine) Unmarshal(data []byte, target interface{}) error {
	return e.api.Unmarshal(data, target)
}

type goJSONEngine struct{}

func (goJSONEngine) Name() string { return EngineGoJSON }

func (goJSONEngine) Marshal(value interface{}) ([]byte, error) {
	return gojson.Marshal(value)
}

func (goJSONEngine) Unmarshal(data []byte, target interface{}) error {
	return gojson.Unmarshal(data, target)
}

// NewJSON returns a parser backed by encoding/json.
func NewJSON() *Facade {
	return NewFacade(stdEngine{})
}

// NewSonic returns a parser backed by sonic in encoding/json compatible mode.
func NewSonic() *Facade {
	return NewFacade(sonicEngine{api: sonic.ConfigStd})
}

// NewGoJSON returns a parser backed by goccy/go-json.
func NewGoJSON() *Facade {
	return NewFacade(goJSONEngine{})
}
