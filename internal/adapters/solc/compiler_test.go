package solc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVersionPattern(t *testing.T) {
	tests := []struct {
		name   string
		output string
		want   string
	}{
		{
			"release build",
			"solc, the solidity compiler commandline interface\nVersion: 0.8.19+commit.7dd6d404.Linux.g++\n",
			"0.8.19+commit.7dd6d404",
		},
		{
			"macos build",
			"Version: 0.8.24+commit.e11b9ed9.Darwin.appleclang",
			"0.8.24+commit.e11b9ed9",
		},
		{
			"nightly build has no commit form",
			"Version: 0.8.25-nightly.2024.1.8",
			"",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, versionPattern.FindString(tt.output))
		})
	}
}
