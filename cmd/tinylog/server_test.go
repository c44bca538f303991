package main

import (
	"bytes"
	"context"
	"io"
	"net"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestRunServerStopsOnCancel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "serve.log")
	c := &cli{
		cfg: appConfig{
			Path:           path,
			APIAddr:        "127.0.0.1:0",
			MetricsEnabled: true,
		},
		log: newLogger("error", io.Discard),
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	if err := c.runServer(ctx, &out); err != nil {
		t.Fatalf("runServer: %v", err)
	}

	if _, err := os.Stat(path); err != nil {
		t.Errorf("log file not created: %v", err)
	}
	for _, want := range []string{"HTTP API", "/metrics", "Log File", "Shutting down"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
}

func TestRunServerWithoutPath(t *testing.T) {
	c := &cli{
		cfg: appConfig{APIAddr: "127.0.0.1:0"},
		log: newLogger("error", io.Discard),
	}
	if err := c.runServer(context.Background(), io.Discard); err == nil {
		t.Fatal("expected error without a log path")
	}
}

func freeAddr(t *testing.T) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	addr := ln.Addr().String()
	_ = ln.Close()
	return addr
}

func TestRunServerTCPIngest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tcp.log")
	tcpAddr := freeAddr(t)
	c := &cli{
		cfg: appConfig{
			Path:    path,
			APIAddr: "127.0.0.1:0",
			TCPAddr: tcpAddr,
			TCPType: "info",
		},
		log: newLogger("error", io.Discard),
	}

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- c.runServer(ctx, io.Discard) }()

	var conn net.Conn
	deadline := time.Now().Add(2 * time.Second)
	for {
		var err error
		conn, err = net.Dial("tcp", tcpAddr)
		if err == nil {
			break
		}
		if time.Now().After(deadline) {
			cancel()
			t.Fatalf("dial: %v", err)
		}
		time.Sleep(10 * time.Millisecond)
	}
	if _, err := conn.Write([]byte("over the wire\n")); err != nil {
		t.Fatalf("write: %v", err)
	}
	_ = conn.Close()

	for {
		data, _ := os.ReadFile(path)
		if strings.Contains(string(data), "] info: over the wire\n") {
			break
		}
		if time.Now().After(deadline) {
			cancel()
			t.Fatalf("log = %q", data)
		}
		time.Sleep(10 * time.Millisecond)
	}

	cancel()
	if err := <-errCh; err != nil {
		t.Fatalf("runServer: %v", err)
	}
}
