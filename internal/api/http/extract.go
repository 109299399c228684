package http

import (
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/kcetprep/kcetprep/internal/extract"
	"github.com/kcetprep/kcetprep/internal/predict"
	"github.com/kcetprep/kcetprep/internal/uploads"
)

// POST /cutoffs/extract[?save=true]
// Sends every stored cutoff PDF to the extractor. With save=true the rows
// replace the dataset file the prediction engine reads.
func ExtractCutoffsHandler(client *extract.Client, svc *uploads.Service, datasetPath string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		files, err := svc.ListCutoffs(r.Context(), nil)
		if err != nil {
			respondError(w, "list cutoffs", err)
			return
		}
		var (
			in      []extract.File
			closers []io.Closer
		)
		defer func() {
			for _, c := range closers {
				_ = c.Close()
			}
		}()
		for _, f := range files {
			rc, err := svc.Open(f.BlobKey)
			if err != nil {
				log.Printf("extract: skip %s: %v", f.BlobKey, err)
				continue
			}
			closers = append(closers, rc)
			in = append(in, extract.File{Name: f.FileName, Year: f.Year, Body: rc})
		}

		rows, err := client.Extract(r.Context(), in)
		switch {
		case errors.Is(err, extract.ErrNoFiles):
			http.Error(w, "no cutoff files uploaded", http.StatusBadRequest)
			return
		case errors.Is(err, extract.ErrTimeout):
			http.Error(w, "extraction timed out", http.StatusGatewayTimeout)
			return
		case err != nil:
			log.Printf("extract: %v", err)
			http.Error(w, err.Error(), http.StatusBadGateway)
			return
		}

		saved := false
		if r.URL.Query().Get("save") == "true" {
			if err := writeDataset(datasetPath, rows); err != nil {
				respondError(w, "save dataset", err)
				return
			}
			saved = true
		}
		respondJSON(w, http.StatusOK, map[string]any{"rows": rows, "count": len(rows), "saved": saved})
	}
}

// writeDataset replaces path atomically.
func writeDataset(path string, rows []predict.HistoricalRecord) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, "create dataset dir")
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".dataset-*.csv")
	if err != nil {
		return errors.Wrap(err, "create temp dataset")
	}
	defer os.Remove(tmp.Name())
	if err := predict.WriteCSV(tmp, rows); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "close temp dataset")
	}
	return errors.Wrap(os.Rename(tmp.Name(), path), "replace dataset")
}
