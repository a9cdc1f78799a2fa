package main

import (
	"context"
	"flag"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/lueurxax/coverage-dashboard/internal/core/errors"
	"github.com/lueurxax/coverage-dashboard/internal/dashboard"
)

func TestRunMode_UnknownModeReturnsError(t *testing.T) {
	err := runMode(context.Background(), nil, "crawl", dashboard.Selection{}, "")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	assert.Contains(t, err.Error(), `"crawl"`)
}

func TestMultiFlag_Repeated(t *testing.T) {
	var m multiFlag

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.Var(&m, "department", "")

	require.NoError(t, fs.Parse([]string{"--department=Antioquia", "--department=Bogotá, D.C."}))
	assert.Equal(t, multiFlag{"Antioquia", "Bogotá, D.C."}, m)
}
