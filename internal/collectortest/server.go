// Package collectortest provides a mock collector endpoint for
// integration tests and local development. It accepts the single-record
// envelope POSTs emitted by the logger, validates their shape, captures
// them for assertions, and writes the payload/done signal files test
// harnesses watch for.
package collectortest

import (
	"context"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/valyala/fastjson"
)

// Receiver is one mock collector listener bound to 127.0.0.1.
type Receiver struct {
	port       int
	store      *Store
	payloadDir string
	archive    *Archive
	srv        *http.Server
	parser     fastjson.ParserPool
	accepted   int64
	rejected   int64
}

// NewReceiver creates a receiver for the given port. Port 0 picks an
// ephemeral port on Start. payloadDir may be empty to skip signal files.
func NewReceiver(port int, store *Store, payloadDir string) *Receiver {
	return &Receiver{
		port:       port,
		store:      store,
		payloadDir: payloadDir,
	}
}

// AttachArchive routes accepted payloads into a capture archive as well.
// Must be called before Start.
func (rc *Receiver) AttachArchive(a *Archive) {
	rc.archive = a
}

// Start begins serving in a background goroutine.
func (rc *Receiver) Start() error {
	ln, err := net.Listen("tcp", fmt.Sprintf("127.0.0.1:%d", rc.port))
	if err != nil {
		return err
	}
	rc.port = ln.Addr().(*net.TCPAddr).Port

	mux := http.NewServeMux()
	mux.HandleFunc("/", rc.handleIngest)
	rc.srv = &http.Server{Handler: mux}

	go func() {
		if err := rc.srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			log.Printf("collectortest: receiver stopped: %v", err)
		}
	}()
	return nil
}

// Port returns the bound port.
func (rc *Receiver) Port() int {
	return rc.port
}

// URL returns the endpoint loggers should be pointed at.
func (rc *Receiver) URL() string {
	return fmt.Sprintf("http://127.0.0.1:%d/v1/logs", rc.port)
}

// Accepted returns how many payloads were accepted since start.
func (rc *Receiver) Accepted() int64 {
	return atomic.LoadInt64(&rc.accepted)
}

// Rejected returns how many payloads failed validation.
func (rc *Receiver) Rejected() int64 {
	return atomic.LoadInt64(&rc.rejected)
}

// Shutdown stops the receiver gracefully.
func (rc *Receiver) Shutdown(ctx context.Context) error {
	if rc.srv != nil {
		return rc.srv.Shutdown(ctx)
	}
	return nil
}

// handleIngest processes envelope POSTs on any path.
func (rc *Receiver) handleIngest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Failed to read body", http.StatusInternalServerError)
		return
	}
	defer r.Body.Close()

	p := rc.parser.Get()
	defer rc.parser.Put(p)

	v, err := p.ParseBytes(body)
	if err != nil {
		atomic.AddInt64(&rc.rejected, 1)
		http.Error(w, fmt.Sprintf("Error: invalid JSON: %v", err), http.StatusBadRequest)
		return
	}

	d, err := decodeEnvelope(v)
	if err != nil {
		atomic.AddInt64(&rc.rejected, 1)
		http.Error(w, fmt.Sprintf("Error: %v", err), http.StatusBadRequest)
		return
	}
	d.Port = rc.port
	d.Body = body

	rc.store.Add(d)
	atomic.AddInt64(&rc.accepted, 1)

	if rc.payloadDir != "" {
		rc.writeSignalFiles(body)
	}
	if rc.archive != nil {
		if err := rc.archive.Append(body); err != nil {
			log.Printf("collectortest: archive append: %v", err)
		}
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

// decodeEnvelope validates the single-record envelope shape and pulls out
// the delivery fields.
func decodeEnvelope(v *fastjson.Value) (Delivery, error) {
	logRecords := v.GetArray("resourceLogs", "0", "scopeLogs", "0", "logRecords")
	if len(logRecords) == 0 {
		return Delivery{}, fmt.Errorf("no logRecords in envelope")
	}

	rec := logRecords[0]
	d := Delivery{
		TimeUnixNano:   rec.GetInt64("timeUnixNano"),
		SeverityNumber: rec.GetInt("severityNumber"),
		SeverityText:   string(rec.GetStringBytes("severityText")),
		Record:         string(rec.GetStringBytes("body", "stringValue")),
	}
	if d.TimeUnixNano == 0 {
		return Delivery{}, fmt.Errorf("missing timeUnixNano")
	}
	if d.SeverityText == "" {
		return Delivery{}, fmt.Errorf("missing severityText")
	}
	if d.Record == "" {
		return Delivery{}, fmt.Errorf("missing body.stringValue")
	}
	return d, nil
}

// writeSignalFiles drops the raw payload in payload_<port>.json and a
// done_<port> marker for harnesses that poll the filesystem.
func (rc *Receiver) writeSignalFiles(body []byte) {
	payloadFile := filepath.Join(rc.payloadDir, fmt.Sprintf("payload_%d.json", rc.port))
	if err := os.WriteFile(payloadFile, body, 0644); err != nil {
		log.Printf("collectortest: writing %s: %v", payloadFile, err)
	}
	doneFile := filepath.Join(rc.payloadDir, fmt.Sprintf("done_%d", rc.port))
	if err := os.WriteFile(doneFile, []byte("1"), 0644); err != nil {
		log.Printf("collectortest: writing %s: %v", doneFile, err)
	}
}
