// SPDX-License-Identifier: GPL-3.0-or-later

package serverquery

import (
	"bufio"
	"io"
	"net"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const (
	statusOK         = "error id=0 msg=ok"
	statusEmpty      = "error id=1281 msg=database\\sempty\\sresult\\sset"
	statusBadLogin   = "error id=520 msg=invalid\\sclient\\slogin\\sor\\spassword"
	statusNotAllowed = "error id=2568 msg=insufficient\\sclient\\spermissions failed_permid=8470"
)

type queryReply struct {
	data   string
	status string
	delay  time.Duration
}

// queryServer imitates a ServerQuery interface. It answers a command by its first
// word with the configured reply, unknown commands get id=256 (command not found).
type queryServer struct {
	greeting string
	replies  map[string]queryReply

	ln net.Listener
	wg sync.WaitGroup

	mu       sync.Mutex
	received []string
}

const defaultGreeting = "TS3\n\rWelcome to the TeamSpeak 3 ServerQuery interface, type \"help\" for a list of commands and \"help <command>\" for information on a specific command.\n\r"

func newQueryServer(t *testing.T, replies map[string]queryReply) *queryServer {
	return newQueryServerWithGreeting(t, defaultGreeting, replies)
}

func newQueryServerWithGreeting(t *testing.T, greeting string, replies map[string]queryReply) *queryServer {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	srv := &queryServer{
		greeting: greeting,
		replies:  replies,
		ln:       ln,
	}
	srv.wg.Add(1)
	go srv.serve()

	t.Cleanup(srv.close)

	return srv
}

func (s *queryServer) addr() string { return s.ln.Addr().String() }

func (s *queryServer) commands() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.received...)
}

func (s *queryServer) close() {
	_ = s.ln.Close()
	s.wg.Wait()
}

func (s *queryServer) serve() {
	defer s.wg.Done()
	for {
		conn, err := s.ln.Accept()
		if err != nil {
			return
		}
		s.handle(conn)
	}
}

func (s *queryServer) handle(conn io.ReadWriteCloser) {
	defer func() { _ = conn.Close() }()

	w := bufio.NewWriter(conn)
	_, _ = w.WriteString(s.greeting)
	_ = w.Flush()

	sc := bufio.NewScanner(conn)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}

		s.mu.Lock()
		s.received = append(s.received, line)
		s.mu.Unlock()

		name, _, _ := strings.Cut(line, " ")
		if name == "quit" {
			_, _ = w.WriteString(statusOK + "\n\r")
			_ = w.Flush()
			return
		}

		reply, ok := s.replies[name]
		if !ok {
			reply = queryReply{status: "error id=256 msg=command\\snot\\sfound"}
		}
		if reply.status == "" {
			reply.status = statusOK
		}
		time.Sleep(reply.delay)
		if reply.data != "" {
			_, _ = w.WriteString(reply.data + "\n\r")
		}
		_, _ = w.WriteString(reply.status + "\n\r")
		_ = w.Flush()
	}
}
