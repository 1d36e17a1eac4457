package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/SPRIME01/structlog/internal/collectortest"
)

func main() {
	// Command-line flags
	portsStr := flag.String("ports", "43215,51417", "Comma-separated ports to listen on")
	payloadDir := flag.String("payload-dir", "/tmp", "Directory for payload and done signal files")
	pidFile := flag.String("pid-file", "", "File to write the server PID to")
	archivePath := flag.String("archive", "", "Optional compressed capture archive for accepted payloads")
	flag.Parse()

	ports, err := parsePorts(*portsStr)
	if err != nil {
		log.Fatalf("Invalid ports: %v", err)
	}

	if err := os.MkdirAll(*payloadDir, 0755); err != nil {
		log.Fatalf("Failed to create payload dir: %v", err)
	}

	// 1. Optional capture archive shared by all receivers
	var archive *collectortest.Archive
	if *archivePath != "" {
		archive, err = collectortest.CreateArchive(*archivePath)
		if err != nil {
			log.Fatalf("Failed to create archive: %v", err)
		}
		log.Printf("Capturing payloads to %s", *archivePath)
	}

	// 2. Start one receiver per port
	store := collectortest.NewStore()
	receivers := make([]*collectortest.Receiver, 0, len(ports))
	for _, port := range ports {
		rc := collectortest.NewReceiver(port, store, *payloadDir)
		if archive != nil {
			rc.AttachArchive(archive)
		}
		if err := rc.Start(); err != nil {
			log.Fatalf("Failed to start receiver on port %d: %v", port, err)
		}
		log.Printf("Mock collector listening on http://127.0.0.1:%d", rc.Port())
		receivers = append(receivers, rc)
	}

	// 3. PID file for test harnesses
	if *pidFile != "" {
		pid := strconv.Itoa(os.Getpid())
		if err := os.WriteFile(*pidFile, []byte(pid), 0644); err != nil {
			log.Fatalf("Failed to write pid file: %v", err)
		}
	}

	// 4. Graceful shutdown on SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	sig := <-quit
	log.Printf("Received signal: %v. Shutting down...", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	for _, rc := range receivers {
		if err := rc.Shutdown(ctx); err != nil {
			log.Printf("Receiver shutdown error: %v", err)
		}
	}
	if archive != nil {
		if err := archive.Close(); err != nil {
			log.Printf("Archive close error: %v", err)
		}
	}
	log.Printf("Mock collector exited. Accepted %d payloads.", store.Len())
}

func parsePorts(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	ports := make([]int, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		port, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("bad port %q: %w", p, err)
		}
		ports = append(ports, port)
	}
	if len(ports) == 0 {
		return nil, fmt.Errorf("no ports given")
	}
	return ports, nil
}
