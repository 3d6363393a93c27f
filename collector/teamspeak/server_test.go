// SPDX-License-Identifier: GPL-3.0-or-later

package teamspeak

import (
	"bufio"
	"net"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const tsStatusOK = "error id=0 msg=ok"

// tsServer is a TCP ServerQuery interface with one vserver per entry of names.
// serverinfo of the vservers listed in stall is answered after the given delay.
type tsServer struct {
	names map[string]string
	stall map[string]time.Duration

	ln    net.Listener
	wg    sync.WaitGroup
	conns atomic.Int32
}

func newTSServer(t *testing.T, names map[string]string, stall map[string]time.Duration) *tsServer {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	srv := &tsServer{names: names, stall: stall, ln: ln}
	srv.wg.Add(1)
	go srv.serve()

	t.Cleanup(func() {
		_ = srv.ln.Close()
		srv.wg.Wait()
	})

	return srv
}

func (s *tsServer) port() int { return s.ln.Addr().(*net.TCPAddr).Port }

func (s *tsServer) serve() {
	defer s.wg.Done()
	for {
		conn, err := s.ln.Accept()
		if err != nil {
			return
		}
		s.conns.Add(1)
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.handle(conn)
		}()
	}
}

func (s *tsServer) handle(conn net.Conn) {
	defer func() { _ = conn.Close() }()

	w := bufio.NewWriter(conn)
	reply := func(lines ...string) {
		for _, l := range lines {
			_, _ = w.WriteString(l + "\n\r")
		}
		_ = w.Flush()
	}

	reply("TS3", "Welcome to the TeamSpeak 3 ServerQuery interface.")

	var selected string
	sc := bufio.NewScanner(conn)

	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		name, args, _ := strings.Cut(line, " ")

		switch name {
		case "":
		case "quit":
			reply(tsStatusOK)
			return
		case "version":
			reply("version=3.13.7 build=1655727713 platform=Linux", tsStatusOK)
		case "login":
			reply(tsStatusOK)
		case "serverlist":
			var rows []string
			for _, id := range []string{"1", "2", "3"} {
				if vsName, ok := s.names[id]; ok {
					rows = append(rows, "virtualserver_id="+id+" virtualserver_name="+strings.ReplaceAll(vsName, " ", `\s`))
				}
			}
			reply(strings.Join(rows, "|"), tsStatusOK)
		case "use":
			selected = strings.TrimPrefix(args, "sid=")
			reply(tsStatusOK)
		case "serverinfo":
			time.Sleep(s.stall[selected])
			reply("virtualserver_name="+strings.ReplaceAll(s.names[selected], " ", `\s`)+" virtualserver_clientsonline=4", tsStatusOK)
		case "clientlist":
			reply("clid=5 client_nickname=User1 client_type=0", tsStatusOK)
		default:
			reply(`error id=256 msg=command\snot\sfound`)
		}
	}
}
