package internal

import (
	"dm-lab/domain/document"
	"embed"
	stderrors "errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
)

//go:embed inspect.html
var templatesFS embed.FS

const defaultInspectPrefix = "doc:"

type InspectRow struct {
	Key        string
	Collection string
	ID         string
	Seq        string
	ExpiresAt  string
	Detail     string
}

type RowMapper func(key string, val []byte, expiresAt uint64) InspectRow

type PageData struct {
	Prefix string
	Items  []InspectRow
	Stats  map[string]any
}

// NewInspectHandler renders the keys of db under the ?prefix= query
// parameter, documents first-class, everything else as raw sizes.
func NewInspectHandler(db *badger.DB, mapper RowMapper) http.Handler {
	tmpl := template.Must(template.ParseFS(templatesFS, "inspect.html"))
	if mapper == nil {
		mapper = DefaultMapper
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		prefix := r.URL.Query().Get("prefix")
		if prefix == "" {
			prefix = defaultInspectPrefix
		}
		data := PageData{Prefix: prefix, Stats: make(map[string]any)}

		err := db.View(func(txn *badger.Txn) error {
			it := txn.NewIterator(badger.DefaultIteratorOptions)
			defer it.Close()
			for it.Seek([]byte(prefix)); it.ValidForPrefix([]byte(prefix)); it.Next() {
				item := it.Item()
				err := item.Value(func(val []byte) error {
					data.Items = append(data.Items, mapper(string(item.Key()), val, item.ExpiresAt()))
					return nil
				})
				if err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		lsm, vlog := db.Size()
		data.Stats["keys"] = len(data.Items)
		data.Stats["lsm_bytes"] = lsm
		data.Stats["vlog_bytes"] = vlog
		data.Stats["collections"] = countCollections(data.Items)

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_ = tmpl.Execute(w, data)
	})
}

// StartDebugServer serves the inspector on localhost only. The caller owns
// the returned server and shuts it down.
func StartDebugServer(db *badger.DB, port int, log *slog.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/inspect", NewInspectHandler(db, nil))

	srv := &http.Server{
		Addr:              fmt.Sprintf("127.0.0.1:%d", port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			log.Warn("Debug inspector stopped", "error", err)
		}
	}()
	log.Info("Debug Badger inspector available", "url", fmt.Sprintf("http://localhost:%d/inspect", port))
	return srv
}

func DefaultMapper(key string, val []byte, expiresAt uint64) InspectRow {
	row := InspectRow{
		Key:        key,
		Collection: "-",
		ID:         "-",
		Seq:        "-",
		ExpiresAt:  "never",
		Detail:     "Size: " + strconv.Itoa(len(val)) + " bytes",
	}
	if expiresAt > 0 {
		row.ExpiresAt = time.Unix(int64(expiresAt), 0).UTC().Format(time.RFC3339)
	}

	// doc:{collection}:{id}
	parts := strings.SplitN(key, ":", 3)
	if len(parts) != 3 || parts[0]+":" != defaultInspectPrefix {
		return row
	}
	row.Collection = parts[1]
	row.ID = parts[2]
	doc, err := document.Unmarshal(val)
	if err != nil {
		row.Detail = "undecodable: " + err.Error()
		return row
	}
	row.Seq = strconv.FormatUint(doc.Seq, 10)
	row.Detail = formatFields(doc.Fields)
	return row
}

func formatFields(fields document.Fields) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s=%v", k, fields[k])
	}
	return b.String()
}

func countCollections(rows []InspectRow) int {
	seen := make(map[string]struct{})
	for _, r := range rows {
		if r.Collection != "-" {
			seen[r.Collection] = struct{}{}
		}
	}
	return len(seen)
}
