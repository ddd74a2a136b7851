// SPDX-License-Identifier: MPL-2.0

package applet

import (
	"errors"
	"os/user"
	"strings"
	"testing"
)

func TestLognameFromEnv(t *testing.T) {
	t.Parallel()

	env := map[string]string{"LOGNAME": "alice"}
	stdout, stderr, code := runApplet(t, "logname", nil, "", env)
	if code != 0 || stderr != "" {
		t.Fatalf("code=%d stderr=%q", code, stderr)
	}
	if stdout != "alice\n" {
		t.Errorf("stdout = %q, want %q", stdout, "alice\n")
	}
}

func TestLognameFallsBackToPasswd(t *testing.T) {
	old := currentUser
	currentUser = func() (*user.User, error) {
		return &user.User{Username: "bob"}, nil
	}
	defer func() { currentUser = old }()

	stdout, _, code := runApplet(t, "logname", nil, "", nil)
	if code != 0 || stdout != "bob\n" {
		t.Errorf("code=%d stdout=%q", code, stdout)
	}
}

func TestLognameNoLoginName(t *testing.T) {
	old := currentUser
	currentUser = func() (*user.User, error) {
		return nil, errors.New("user: unknown userid")
	}
	defer func() { currentUser = old }()

	stdout, stderr, code := runApplet(t, "logname", nil, "", map[string]string{"LOGNAME": ""})
	if code != 1 {
		t.Errorf("code = %d, want 1", code)
	}
	if stdout != "" || stderr != "logname: no login name\n" {
		t.Errorf("stdout=%q stderr=%q", stdout, stderr)
	}
}

func TestLognameExtraOperand(t *testing.T) {
	t.Parallel()

	_, stderr, code := runApplet(t, "logname", []string{"x"}, "", nil)
	if code != 1 || !strings.Contains(stderr, "extra operand") {
		t.Errorf("code=%d stderr=%q", code, stderr)
	}
}
