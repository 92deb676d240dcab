package logsvc

import (
	"bytes"
	"log"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/devanshdeveloper/edu-manage-sub000/core"
	"github.com/devanshdeveloper/edu-manage-sub000/core/user"
)

func TestRollbarLogger(t *testing.T) {
	buf := new(bytes.Buffer)
	conf := &core.Config{Env: "TEST", TestMode: true}
	logger := NewRollbarLogger(log.New(buf, "", 0), conf)

	sess := user.Session{UserID: "42", Name: "Ada", Email: "ada@example.com"}
	logger.Error("could not load items", errors.New("boom"), map[string]interface{}{"resource": "fees"}, sess)

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "ERROR: could not load items\nboom\n"), out)
	assert.Contains(t, out, "map[resource:fees]\n")
	assert.NotContains(t, out, "ada@example.com")
}

func TestRollbarLogger_prepare(t *testing.T) {
	logger := RollbarLogger{}
	err := errors.New("boom")
	sess := user.Session{UserID: "42"}

	args := logger.prepare("msg", []interface{}{err, sess, user.Session{UserID: "7"}})
	assert.Equal(t, []interface{}{"msg", err}, args, "sessions are not sent as extras")
}
