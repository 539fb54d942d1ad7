package models_test

import (
	"fmt"
	"net"
	"os/exec"
	"strings"
	"testing"
	"time"
)

// throwaway describes a disposable docker container used by integration tests.
type throwaway struct {
	image     string
	port      string
	env       []string
	args      []string
	readiness []string
	timeout   time.Duration
}

var redisContainer = throwaway{
	image:     "redis:7-alpine",
	port:      "6379/tcp",
	readiness: []string{"redis-cli", "ping"},
	timeout:   time.Minute,
}

func mysqlContainer(database string) throwaway {
	return throwaway{
		image:     "mysql:8.0",
		port:      "3306/tcp",
		env:       []string{"MYSQL_ROOT_PASSWORD=testpw", "MYSQL_DATABASE=" + database},
		args:      []string{"--default-authentication-plugin=mysql_native_password"},
		readiness: []string{"mysql", "-uroot", "-ptestpw", "-e", "SELECT 1", database},
		timeout:   2 * time.Minute,
	}
}

// start runs the container, waits for its readiness command and returns the
// published host port. The container is removed when the test ends.
func (c throwaway) start(t *testing.T) string {
	t.Helper()
	if _, err := exec.LookPath("docker"); err != nil {
		t.Skip("docker is not available")
	}

	name := fmt.Sprintf("surveillance-it-%s-%d", strings.SplitN(c.image, ":", 2)[0], time.Now().UnixNano())
	args := []string{"run", "-d", "--name", name, "-p", "127.0.0.1:0:" + strings.TrimSuffix(c.port, "/tcp")}
	for _, e := range c.env {
		args = append(args, "-e", e)
	}
	args = append(args, c.image)
	args = append(args, c.args...)

	if out, err := docker(args...); err != nil {
		t.Fatalf("start %s: %v\n%s", c.image, err, out)
	}
	t.Cleanup(func() { _, _ = docker("rm", "-f", name) })

	out, err := docker("port", name, c.port)
	if err != nil {
		t.Fatalf("%s port: %v\n%s", c.image, err, out)
	}
	// "127.0.0.1:49154", possibly followed by an IPv6 line
	_, port, err := net.SplitHostPort(strings.TrimSpace(strings.SplitN(out, "\n", 2)[0]))
	if err != nil {
		t.Fatalf("unexpected docker port output %q: %v", out, err)
	}

	probe := append([]string{"exec", name}, c.readiness...)
	deadline := time.Now().Add(c.timeout)
	for time.Now().Before(deadline) {
		if _, err := docker(probe...); err == nil {
			return port
		}
		time.Sleep(500 * time.Millisecond)
	}
	t.Fatalf("%s did not become ready within %s", c.image, c.timeout)
	return ""
}

func docker(args ...string) (string, error) {
	b, err := exec.Command("docker", args...).CombinedOutput()
	return string(b), err
}
