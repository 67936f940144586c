package driver_test

import (
	"testing"

	"github.com/monsieurbadia/zhoo/internal/driver"
	"github.com/stretchr/testify/assert"
)

func TestValidateBackendAcceptsCranelift(t *testing.T) {
	assert.NoError(t, driver.ValidateBackend(driver.BackendCranelift))
}

func TestValidateBackendRejectsUnknown(t *testing.T) {
	err := driver.ValidateBackend("llvm")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "llvm")
}

func TestCompileRejectsUnknownBackendBeforeTouchingDisk(t *testing.T) {
	err := driver.Compile(driver.Settings{Input: "/does/not/exist.zh", Backend: "llvm"})
	assert.Error(t, err)
}

func TestCompileReportsMissingInputFile(t *testing.T) {
	err := driver.Compile(driver.Settings{Input: "/does/not/exist.zh", Backend: driver.BackendCranelift})
	assert.Error(t, err)
}
