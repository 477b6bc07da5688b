package topic

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignature(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"only short words", "a an the of to", ""},
		{"lowercase and order", "Deploying Kubernetes Clusters", "deploying|kubernetes|clusters"},
		{"punctuation splits", "rust,golang;python!java", "rust|golang|python|java"},
		{"length boundary", "cat dogs", "dogs"},
		{"keeps first five", "alpha bravo charlie delta echoes foxtrot", "alpha|bravo|charlie|delta|echoes"},
		{"repeats kept", "cache cache layer cache", "cache|cache|layer|cache"},
		{"repeats fill the prefix", "alpha alpha alpha alpha alpha beta", "alpha|alpha|alpha|alpha|alpha"},
		{"digits count", "error 5000 again", "error|5000|again"},
		{"unicode letters", "привет мир", "привет"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Signature(tt.input))
		})
	}
}

func TestIsTopicShift(t *testing.T) {
	tests := []struct {
		name string
		old  string
		new  string
		want bool
	}{
		{"empty old", "", "golang|channels", false},
		{"empty new", "golang|channels", "", false},
		{"both empty", "", "", false},
		{"identical", "golang|channels|select", "golang|channels|select", false},
		{"order ignored", "channels|golang", "golang|channels", false},
		{"single disjoint", "golang", "pizza", true},
		{"one of five shared", "aaaa|bbbb|cccc|dddd|eeee", "aaaa|ffff|gggg|hhhh|iiii", false},
		{"disjoint sets", "aaaa|bbbb|cccc", "dddd|eeee|ffff", true},
		{"min denominator", "golang|channels|select|mutex|atomic", "golang", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsTopicShift(tt.old, tt.new))
			assert.Equal(t, tt.want, IsTopicShift(tt.new, tt.old), "must be symmetric")
		})
	}
}
