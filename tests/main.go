package main

import (
	"encoding/json"
	"io"
	"log"
	"math/rand"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/containeroo/tinyflags"
	"gopkg.in/yaml.v3"
)

// message mirrors the fields of a Rocket.Chat incoming-webhook body that jirahook sends.
type message struct {
	Alias       string       `json:"alias" yaml:"alias"`
	IconURL     string       `json:"icon_url" yaml:"icon_url"`
	Text        string       `json:"text" yaml:"text"`
	Attachments []attachment `json:"attachments" yaml:"attachments"`
}

type attachment struct {
	AuthorName string  `json:"author_name" yaml:"author_name"`
	AuthorLink string  `json:"author_link" yaml:"author_link"`
	Color      string  `json:"color,omitempty" yaml:"color,omitempty"`
	Fields     []field `json:"fields" yaml:"fields"`
}

type field struct {
	Title string `json:"title" yaml:"title"`
	Value string `json:"value" yaml:"value"`
	Short bool   `json:"short" yaml:"short"`
}

// main starts a mock Rocket.Chat incoming webhook that prints every message as YAML.
func main() {
	var (
		flagListen      string
		flagStatus      string
		flagRandomDelay bool
	)

	tf := tinyflags.NewFlagSet("mock-chat", tinyflags.ExitOnError)
	tf.StringVar(&flagListen, "listen", ":3000", "Address to listen on").Value()
	tf.StringVar(&flagStatus, "status", "200", "HTTP status returned for every message").Value()
	tf.BoolVar(&flagRandomDelay, "random-delay", false, "Delay each response by 200-1000ms").Value()

	if err := tf.Parse(os.Args[1:]); err != nil {
		log.Fatal("flag parse error:", err)
	}

	status, err := strconv.Atoi(flagStatus)
	if err != nil || status < 100 || status > 599 {
		log.Fatalf("invalid --status %q", flagStatus)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /hooks/", func(w http.ResponseWriter, r *http.Request) {
		if flagRandomDelay {
			time.Sleep(time.Duration(200+rand.Intn(800)) * time.Millisecond)
		}

		raw, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "read body: "+err.Error(), http.StatusBadRequest)
			return
		}

		var msg message
		if err := json.Unmarshal(raw, &msg); err != nil {
			http.Error(w, `{"success":false,"error":"invalid JSON"}`, http.StatusBadRequest)
			return
		}

		out, _ := yaml.Marshal(msg)
		log.Printf("message on %s:\n%s", r.URL.Path, out)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(`{"success":` + strconv.FormatBool(status < 300) + `}`)) // nolint:errcheck
	})

	log.Printf("Mock chat listening on %s", flagListen)
	log.Fatal(http.ListenAndServe(flagListen, mux))
}
