// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"strings"
	"testing"
)

const testSchema = `
#Sample: {
	name:         string & !=""
	count:        int
	description?: string
}
`

type sample struct {
	Name        string `json:"name"`
	Count       int    `json:"count"`
	Description string `json:"description,omitempty"`
}

func TestDecode(t *testing.T) {
	t.Parallel()

	t.Run("valid document decodes", func(t *testing.T) {
		t.Parallel()

		got, err := Decode[sample]([]byte(testSchema), []byte("name: \"demo\"\ncount: 3\n"), "#Sample")
		if err != nil {
			t.Fatalf("Decode() error = %v", err)
		}
		if got.Name != "demo" || got.Count != 3 {
			t.Errorf("Decode() = %+v, want name=demo count=3", got)
		}
		if got.Description != "" {
			t.Errorf("optional field should be empty, got %q", got.Description)
		}
	})

	t.Run("missing required field fails when concrete", func(t *testing.T) {
		t.Parallel()

		_, err := Decode[sample]([]byte(testSchema), []byte("count: 3\n"), "#Sample", WithFilename("sample.cue"))
		if err == nil {
			t.Fatal("expected error for missing name")
		}
		if !strings.Contains(err.Error(), "sample.cue") {
			t.Errorf("error should mention the file name, got: %v", err)
		}
	})

	t.Run("unknown field is rejected by closed definition", func(t *testing.T) {
		t.Parallel()

		_, err := Decode[sample]([]byte(testSchema), []byte("name: \"x\"\ncount: 1\nextra: true\n"), "#Sample")
		if err == nil {
			t.Fatal("expected error for unknown field")
		}
	})

	t.Run("oversized input is rejected", func(t *testing.T) {
		t.Parallel()

		_, err := Decode[sample]([]byte(testSchema), []byte("name: \"x\"\ncount: 1\n"), "#Sample", WithMaxFileSize(4))
		if err == nil {
			t.Fatal("expected size error")
		}
	})

	t.Run("syntax error is reported", func(t *testing.T) {
		t.Parallel()

		_, err := Decode[sample]([]byte(testSchema), []byte("name: {{{"), "#Sample")
		if err == nil {
			t.Fatal("expected syntax error")
		}
	})
}

func TestUnifyNonConcrete(t *testing.T) {
	t.Parallel()

	v, err := Unify([]byte(testSchema), []byte("count: 2\n"), "#Sample", WithConcrete(false))
	if err != nil {
		t.Fatalf("Unify() error = %v", err)
	}
	var m map[string]any
	if err := v.Decode(&m); err == nil {
		if _, ok := m["count"]; !ok {
			t.Errorf("decoded map should contain count, got %v", m)
		}
	}
}
