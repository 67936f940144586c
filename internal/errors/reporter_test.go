package errors_test

import (
	"bytes"
	"testing"

	zerrors "github.com/monsieurbadia/zhoo/internal/errors"
	"github.com/monsieurbadia/zhoo/internal/span"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodeFormatsCategoryAndOrdinal(t *testing.T) {
	assert.Equal(t, 201, zerrors.Code(zerrors.CategorySemantic, 1))
	assert.Equal(t, 103, zerrors.Code(zerrors.CategorySyntax, 3))
	assert.Equal(t, 302, zerrors.Code(zerrors.CategoryGenerate, 2))
}

func TestAddReportSetsHasErrorsMonotonically(t *testing.T) {
	var buf bytes.Buffer
	r := zerrors.NewForTest(&buf)
	require.False(t, r.HasErrors())

	r.AddReport(zerrors.MainNotFound{})
	assert.True(t, r.HasErrors())
	assert.Contains(t, buf.String(), "error[205]")

	r.AbortIfHasError()
	assert.True(t, r.HasErrors(), "HasErrors must stay true across AbortIfHasError under NewForTest")
}

func TestAddReportRendersCodeAndLabel(t *testing.T) {
	var buf bytes.Buffer
	r := zerrors.NewForTest(&buf)
	r.AddSource("<test>", "val x := 1;")

	r.AddReport(zerrors.NameClash{Span: span.New(4, 5), Name: "x"})

	out := buf.String()
	assert.Contains(t, out, "error[207]")
	assert.Contains(t, out, "x")
}

func TestNewForTestSuppressesRaiseExit(t *testing.T) {
	var buf bytes.Buffer
	r := zerrors.NewForTest(&buf)

	r.Raise(zerrors.MainNotFound{})

	assert.Contains(t, buf.String(), "error")
}
