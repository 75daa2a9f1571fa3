// Package archive creates and restores tar.gz backups of the game's
// persistent state: the bbolt object database, the sqlite message journal,
// the text file directory, and the game config. Every archive carries a
// manifest with SHA-256 checksums so a restore can detect corruption.
package archive

import (
	"archive/tar"
	"compress/gzip"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Manifest describes the contents of a backup archive.
type Manifest struct {
	Version   int                  `json:"version"`
	Server    string               `json:"server"`
	Timestamp string               `json:"timestamp"`
	MudName   string               `json:"mud_name"`
	Objects   int                  `json:"objects"`
	Files     map[string]FileEntry `json:"files"`
}

// FileEntry describes a single file within the archive.
type FileEntry struct {
	SHA256 string `json:"sha256"`
	Size   int64  `json:"size"`
	Type   string `json:"type"` // "bolt", "journal", "text", "conf"
}

// BackupParams holds all inputs needed to create a backup.
type BackupParams struct {
	BoltSnapshot      func(destPath string) error // Consistent bolt copy (nil = skip)
	JournalPath       string                      // Path to sqlite journal (empty = skip)
	JournalCheckpoint func() error                // Flush WAL before copy (nil = skip)
	TextDir           string                      // Text files directory (empty = skip)
	ConfPath          string                      // Game config file (empty = skip)
	OutDir            string                      // Output directory for the archive
	MudName           string                      // For the manifest
	Objects           int                         // Object count for the manifest
}

// Create writes a .tar.gz backup and returns the archive path.
func Create(params BackupParams) (string, error) {
	if err := os.MkdirAll(params.OutDir, 0755); err != nil {
		return "", fmt.Errorf("archive: create dir %s: %w", params.OutDir, err)
	}

	filename := fmt.Sprintf("backup-%s.tar.gz", time.Now().Format("20060102-150405"))
	archivePath := filepath.Join(params.OutDir, filename)

	tmpDir, err := os.MkdirTemp("", "mudbits-backup-*")
	if err != nil {
		return "", fmt.Errorf("archive: create temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	manifest := Manifest{
		Version:   1,
		Server:    "mudbits",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		MudName:   params.MudName,
		Objects:   params.Objects,
		Files:     make(map[string]FileEntry),
	}

	// Stage a consistent bolt copy before opening the tar, so a slow
	// snapshot can't hold the output file half-written.
	var boltStaged string
	if params.BoltSnapshot != nil {
		boltStaged = filepath.Join(tmpDir, "game.db")
		if err := params.BoltSnapshot(boltStaged); err != nil {
			return "", fmt.Errorf("archive: bolt snapshot: %w", err)
		}
	}

	var journalStaged string
	if params.JournalPath != "" {
		if params.JournalCheckpoint != nil {
			if err := params.JournalCheckpoint(); err != nil {
				return "", fmt.Errorf("archive: journal checkpoint: %w", err)
			}
		}
		journalStaged = filepath.Join(tmpDir, "journal.db")
		if err := copyFile(params.JournalPath, journalStaged); err != nil {
			return "", fmt.Errorf("archive: copy journal: %w", err)
		}
	}

	outFile, err := os.Create(archivePath)
	if err != nil {
		return "", fmt.Errorf("archive: create %s: %w", archivePath, err)
	}
	defer outFile.Close()

	gw := gzip.NewWriter(outFile)
	defer gw.Close()
	tw := tar.NewWriter(gw)
	defer tw.Close()

	if boltStaged != "" {
		entry, err := addFileToTar(tw, boltStaged, "data/game.db")
		if err != nil {
			return "", err
		}
		entry.Type = "bolt"
		manifest.Files["data/game.db"] = entry
	}

	if journalStaged != "" {
		entry, err := addFileToTar(tw, journalStaged, "data/journal.db")
		if err != nil {
			return "", err
		}
		entry.Type = "journal"
		manifest.Files["data/journal.db"] = entry
	}

	if params.TextDir != "" {
		if info, err := os.Stat(params.TextDir); err == nil && info.IsDir() {
			entries, err := addDirToTar(tw, params.TextDir, "text")
			if err != nil {
				return "", err
			}
			for k, v := range entries {
				v.Type = "text"
				manifest.Files[k] = v
			}
		}
	}

	if params.ConfPath != "" {
		if _, err := os.Stat(params.ConfPath); err == nil {
			archName := "conf/" + filepath.Base(params.ConfPath)
			entry, err := addFileToTar(tw, params.ConfPath, archName)
			if err != nil {
				return "", err
			}
			entry.Type = "conf"
			manifest.Files[archName] = entry
		}
	}

	// Manifest goes last so it covers everything above.
	manifestJSON, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return "", fmt.Errorf("archive: marshal manifest: %w", err)
	}
	if err := tw.WriteHeader(&tar.Header{
		Name:    "manifest.json",
		Size:    int64(len(manifestJSON)),
		Mode:    0644,
		ModTime: time.Now(),
	}); err != nil {
		return "", fmt.Errorf("archive: write manifest header: %w", err)
	}
	if _, err := tw.Write(manifestJSON); err != nil {
		return "", fmt.Errorf("archive: write manifest: %w", err)
	}

	return archivePath, nil
}

// addFileToTar adds a single file to the tar archive with the given archive
// name, computing its SHA-256 while writing.
func addFileToTar(tw *tar.Writer, srcPath, archName string) (FileEntry, error) {
	f, err := os.Open(srcPath)
	if err != nil {
		return FileEntry{}, fmt.Errorf("archive: open %s: %w", srcPath, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return FileEntry{}, fmt.Errorf("archive: stat %s: %w", srcPath, err)
	}

	// Tar paths use forward slashes.
	archName = strings.ReplaceAll(archName, "\\", "/")

	if err := tw.WriteHeader(&tar.Header{
		Name:    archName,
		Size:    info.Size(),
		Mode:    0644,
		ModTime: info.ModTime(),
	}); err != nil {
		return FileEntry{}, fmt.Errorf("archive: header %s: %w", archName, err)
	}

	h := sha256.New()
	written, err := io.Copy(tw, io.TeeReader(f, h))
	if err != nil {
		return FileEntry{}, fmt.Errorf("archive: write %s: %w", archName, err)
	}

	return FileEntry{
		SHA256: hex.EncodeToString(h.Sum(nil)),
		Size:   written,
	}, nil
}

// addDirToTar recursively adds all files in a directory to the tar archive.
func addDirToTar(tw *tar.Writer, srcDir, archPrefix string) (map[string]FileEntry, error) {
	entries := make(map[string]FileEntry)
	err := filepath.Walk(srcDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(srcDir, path)
		if err != nil {
			return err
		}
		archName := archPrefix + "/" + filepath.ToSlash(rel)
		entry, err := addFileToTar(tw, path, archName)
		if err != nil {
			return err
		}
		entries[archName] = entry
		return nil
	})
	return entries, err
}

// copyFile copies a file from src to dst.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}
