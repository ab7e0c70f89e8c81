package util

import (
	"os"
	"testing"

	"github.com/juho05/log"
)

func TestMain(m *testing.M) {
	log.SetSeverity(log.NONE)
	os.Exit(m.Run())
}
