// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package settings loads the JSON settings file of the benchmark
// deployment scripts.
//
// A settings file looks like
//
//	{
//		"github_deploy_key": {"name": "deploy", "path": "/keys/deploy"},
//		"instance_key": {"name": "aws", "path": "/keys/aws.pem"},
//		"port": 5000,
//		"repo": {"name": "hydrangea", "url": "https://...", "branch": "main"},
//		"instances": {"machine_type": "m5.large", "zones": ["us-east-1a"]}
//	}
//
// Every key is required. "zones" may also be a single string.
package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Settings is a loaded settings file.
type Settings struct {
	GithubDeployKey Key       `json:"github_deploy_key"`
	InstanceKey     Key       `json:"instance_key"`
	BasePort        int       `json:"port"`
	Repo            Repo      `json:"repo"`
	Instances       Instances `json:"instances"`
}

// A Key names a key file.
type Key struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

// A Repo is the source repository that is deployed.
type Repo struct {
	Name   string `json:"name"`
	URL    string `json:"url"`
	Branch string `json:"branch"`
}

// Instances describes the machines benchmarks run on.
type Instances struct {
	MachineType string `json:"machine_type"`
	Zones       Zones  `json:"zones" validate:"min=1"`
}

// Zones is a list of availability zones. In JSON it is either a list
// of strings or a single string.
type Zones []string

// UnmarshalJSON implements json.Unmarshaler.
func (z *Zones) UnmarshalJSON(data []byte) error {
	var one string
	if err := json.Unmarshal(data, &one); err == nil {
		*z = Zones{one}
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return err
	}
	*z = list
	return nil
}

// An Error is a problem with a settings file.
type Error struct {
	// Key is the dotted path of a missing key, or "".
	Key string
	Err error
}

func (e *Error) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("malformed settings: missing key %q", e.Key)
	}
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// ErrInvalidTypes is wrapped by the *Error returned for a settings
// file whose values have the wrong types.
var ErrInvalidTypes = errors.New("invalid settings types")

var errMissing = errors.New("missing key")

// presence mirrors Settings with every value left undecoded, so a
// missing key can be told apart from a malformed one.
type presence struct {
	GithubDeployKey *keyPresence     `json:"github_deploy_key" validate:"required"`
	InstanceKey     *keyPresence     `json:"instance_key" validate:"required"`
	Port            *json.RawMessage `json:"port" validate:"required"`
	Repo            *struct {
		Name   *json.RawMessage `json:"name" validate:"required"`
		URL    *json.RawMessage `json:"url" validate:"required"`
		Branch *json.RawMessage `json:"branch" validate:"required"`
	} `json:"repo" validate:"required"`
	Instances *struct {
		MachineType *json.RawMessage `json:"machine_type" validate:"required"`
		Zones       *json.RawMessage `json:"zones" validate:"required"`
	} `json:"instances" validate:"required"`
}

type keyPresence struct {
	Name *json.RawMessage `json:"name" validate:"required"`
	Path *json.RawMessage `json:"path" validate:"required"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Load reads the settings file at path.
//
// If a key is missing, Load returns an *Error naming it. If a value
// has the wrong type, or the list of zones is empty, the *Error wraps
// ErrInvalidTypes. Other errors reading or decoding the file are also
// returned as an *Error wrapping the cause.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &Error{Err: err}
	}
	return Parse(data)
}

// Parse decodes the contents of a settings file. It reports errors
// the same way as Load.
func Parse(data []byte) (*Settings, error) {
	var p presence
	if err := json.Unmarshal(data, &p); err != nil {
		var te *json.UnmarshalTypeError
		if errors.As(err, &te) {
			return nil, &Error{Err: ErrInvalidTypes}
		}
		return nil, &Error{Err: err}
	}
	if err := validate.Struct(&p); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return nil, &Error{Key: keyPath(verrs[0]), Err: errMissing}
		}
		return nil, &Error{Err: err}
	}

	var s Settings
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, &Error{Err: ErrInvalidTypes}
	}
	if err := validate.Struct(&s); err != nil {
		return nil, &Error{Err: ErrInvalidTypes}
	}
	return &s, nil
}

// keyPath returns the dotted JSON path of the field of fe.
func keyPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		ns = ns[i+1:]
	}
	return ns
}
