// Command protosniffd is a small demonstration server: it accepts TCP
// connections, classifies each by its first read using the default chain,
// logs the result, and relays anything it can't classify through a SOCKS5
// server so the connection isn't simply dropped. It exists to exercise the
// core end to end; it is not part of the detection library itself.
package main

import (
	"flag"
	"io"
	"net"
	"time"

	"go.uber.org/zap"

	"github.com/things-go/go-socks5"

	"github.com/divyam234/protosniff/chains"
	"github.com/divyam234/protosniff/frontend/proxyproto"
	"github.com/divyam234/protosniff/layer7"
	"github.com/divyam234/protosniff/tracing/zaptrace"
)

func main() {
	addr := flag.String("addr", ":9000", "listen address")
	proxyMode := flag.String("proxy-protocol", "optional", "off|optional|require")
	flag.Parse()

	log, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	sink := zaptrace.New(log, 50, 20)
	chain, err := chains.DefaultTCP(chains.WithTraceSink(sink))
	if err != nil {
		log.Fatal("build default tcp chain", zap.Error(err))
	}

	ln, err := net.Listen("tcp", *addr)
	if err != nil {
		log.Fatal("listen", zap.Error(err))
	}
	ln = proxyproto.Wrap(ln, parseMode(*proxyMode), 5*time.Second)
	log.Info("listening", zap.String("addr", *addr), zap.String("proxy_protocol", *proxyMode))

	relay, err := socks5.New(&socks5.Config{})
	if err != nil {
		log.Fatal("build socks5 relay", zap.Error(err))
	}

	for {
		conn, err := ln.Accept()
		if err != nil {
			log.Error("accept", zap.Error(err))
			continue
		}
		go handle(conn, chain, relay, log)
	}
}

func parseMode(s string) proxyproto.Mode {
	switch s {
	case "off":
		return proxyproto.ModeDeny
	case "require":
		return proxyproto.ModeRequire
	default:
		return proxyproto.ModeOptional
	}
}

// handle reads the connection's first bytes, classifies them, and either
// logs-and-closes (a known protocol) or hands the connection, prefix bytes
// replayed first, to the SOCKS5 relay (unknown traffic).
func handle(conn net.Conn, chain *layer7.DetectionChain, relay *socks5.Server, log *zap.Logger) {
	buf := make([]byte, chain.MaxInspect())
	n, err := conn.Read(buf)
	if err != nil && n == 0 {
		conn.Close()
		return
	}

	result := chain.Detect(buf[:n])
	log.Info("classified connection",
		zap.String("remote", conn.RemoteAddr().String()),
		zap.String("result", result.String()),
	)

	pc := &prefixConn{Conn: conn, prefix: buf[:n]}
	if !result.IsKnown() {
		if err := relay.ServeConn(pc); err != nil {
			log.Debug("relay closed", zap.Error(err))
		}
		return
	}
	pc.Close()
}

// prefixConn replays bytes already consumed for classification before
// falling through to the wrapped net.Conn.
type prefixConn struct {
	net.Conn
	prefix []byte
}

func (c *prefixConn) Read(p []byte) (int, error) {
	if len(c.prefix) > 0 {
		n := copy(p, c.prefix)
		c.prefix = c.prefix[n:]
		return n, nil
	}
	return c.Conn.Read(p)
}

var _ io.Reader = (*prefixConn)(nil)
