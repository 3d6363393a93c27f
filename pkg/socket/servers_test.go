// SPDX-License-Identifier: GPL-3.0-or-later

package socket

import (
	"bufio"
	"net"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// tcpServer writes banner on accept and answers every input line with
// rowsNumResp "pong" lines followed by "end". Input "bye" closes the connection.
type tcpServer struct {
	banner      string
	rowsNumResp int

	ln net.Listener
	wg sync.WaitGroup
}

func newTCPServer(t *testing.T, banner string, rows int) *tcpServer {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	srv := &tcpServer{banner: banner, rowsNumResp: rows, ln: ln}
	srv.wg.Add(1)
	go srv.serve()

	t.Cleanup(srv.close)

	return srv
}

func (s *tcpServer) addr() string { return "tcp://" + s.ln.Addr().String() }

func (s *tcpServer) close() {
	_ = s.ln.Close()
	s.wg.Wait()
}

func (s *tcpServer) serve() {
	defer s.wg.Done()
	for {
		conn, err := s.ln.Accept()
		if err != nil {
			return
		}
		s.handle(conn)
	}
}

func (s *tcpServer) handle(conn net.Conn) {
	defer func() { _ = conn.Close() }()

	w := bufio.NewWriter(conn)
	if s.banner != "" {
		_, _ = w.WriteString(s.banner)
		_ = w.Flush()
	}

	sc := bufio.NewScanner(conn)
	for sc.Scan() {
		if strings.TrimSpace(sc.Text()) == "bye" {
			return
		}
		_, _ = w.WriteString(strings.Repeat("pong\n\r", s.rowsNumResp) + "end\n\r")
		_ = w.Flush()
	}
}
