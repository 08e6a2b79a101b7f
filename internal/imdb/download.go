package imdb

import (
	"archive/tar"
	"compress/gzip"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path"
	"strings"

	"github.com/dustin/go-humanize"
)

// download fetches url into dest, logging progress. The file is written to
// a temporary name first so an interrupted download never looks like a
// complete archive.
func download(url, dest string) error {
	log.Printf("downloading %s", url)

	resp, err := http.Get(url)
	if err != nil {
		return fmt.Errorf("GET %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET %s: unexpected status %s", url, resp.Status)
	}

	tmp := dest + ".partial"
	out, err := os.Create(tmp)
	if err != nil {
		return err
	}

	counter := &progressCounter{}
	// ContentLength is -1 when the server does not send the header.
	if resp.ContentLength > 0 {
		counter.total = uint64(resp.ContentLength)
	}
	if _, err := io.Copy(out, io.TeeReader(resp.Body, counter)); err != nil {
		out.Close()
		os.Remove(tmp)
		return fmt.Errorf("download %s: %w", url, err)
	}
	if err := out.Close(); err != nil {
		os.Remove(tmp)
		return err
	}

	log.Printf("downloaded %s (%s)", path.Base(dest), humanize.Bytes(counter.written))
	return os.Rename(tmp, dest)
}

// progressCounter logs download progress roughly every 10 MB.
type progressCounter struct {
	written    uint64
	total      uint64
	lastLogged uint64
}

func (pc *progressCounter) Write(p []byte) (int, error) {
	pc.written += uint64(len(p))
	if pc.written-pc.lastLogged >= 10*1024*1024 {
		pc.lastLogged = pc.written
		if pc.total > 0 {
			log.Printf("  %s / %s", humanize.Bytes(pc.written), humanize.Bytes(pc.total))
		} else {
			log.Printf("  %s", humanize.Bytes(pc.written))
		}
	}
	return len(p), nil
}

// readArchive extracts the labelled reviews from the aclImdb tarball.
//
// The corpus layout inside the tarball is:
//
//	aclImdb/{train,test}/{pos,neg}/<id>_<rating>.txt
//
// Unlabelled (unsup) reviews and everything else are skipped.
func readArchive(archivePath string) ([]review, error) {
	f, err := os.Open(archivePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("gzip %s: %w", archivePath, err)
	}
	defer gz.Close()

	tr := tar.NewReader(gz)
	var reviews []review

	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("tar %s: %w", archivePath, err)
		}
		if hdr.Typeflag != tar.TypeReg {
			continue
		}

		train, label, ok := classifyEntry(hdr.Name)
		if !ok {
			continue
		}

		text, err := io.ReadAll(tr)
		if err != nil {
			return nil, fmt.Errorf("tar entry %s: %w", hdr.Name, err)
		}

		reviews = append(reviews, review{
			text:  string(text),
			label: label,
			train: train,
		})
	}

	if len(reviews) == 0 {
		return nil, fmt.Errorf("no labelled reviews found in %s", archivePath)
	}

	log.Printf("extracted %d labelled reviews", len(reviews))
	return reviews, nil
}

// classifyEntry maps a tar entry path to its split and label.
func classifyEntry(name string) (train bool, label float32, ok bool) {
	parts := strings.Split(path.Clean(name), "/")
	// aclImdb / <split> / <class> / <file>.txt
	if len(parts) != 4 || parts[0] != "aclImdb" || !strings.HasSuffix(parts[3], ".txt") {
		return false, 0, false
	}

	switch parts[1] {
	case "train":
		train = true
	case "test":
		train = false
	default:
		return false, 0, false
	}

	switch parts[2] {
	case "pos":
		label = 1
	case "neg":
		label = 0
	default:
		return false, 0, false
	}

	return train, label, true
}
