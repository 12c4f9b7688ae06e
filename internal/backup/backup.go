// Package backup provides tar.gz-based backup and restore for DealDeck data:
// the SQLite preset database, the product source JSON files, and an optional
// config file.
package backup

import (
	"archive/tar"
	"compress/gzip"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver
)

// Backup creates a tar.gz archive containing the SQLite database, the
// product JSON files under dataDir, and an optional config file. It
// performs a WAL checkpoint before copying the database to ensure
// consistency.
func Backup(_ context.Context, dbPath, dataDir, configPath, outputPath string) error {
	// Verify database exists.
	if _, err := os.Stat(dbPath); err != nil {
		return fmt.Errorf("database file not found: %w", err)
	}

	// Checkpoint WAL to flush pending writes.
	if err := checkpointWAL(dbPath); err != nil {
		return fmt.Errorf("WAL checkpoint failed: %w", err)
	}

	outFile, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer outFile.Close()

	gw := gzip.NewWriter(outFile)
	defer gw.Close()

	tw := tar.NewWriter(gw)
	defer tw.Close()

	if err := addFileToTar(tw, dbPath, filepath.Base(dbPath)); err != nil {
		return fmt.Errorf("adding database to archive: %w", err)
	}

	// Archive the per-region product files, preserving the region
	// subdirectory layout.
	if dataDir != "" {
		if err := addDataDirToTar(tw, dataDir); err != nil {
			return fmt.Errorf("adding product data to archive: %w", err)
		}
	}

	// Add the config file if specified and it exists.
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			if err := addFileToTar(tw, configPath, filepath.Base(configPath)); err != nil {
				return fmt.Errorf("adding config to archive: %w", err)
			}
		}
		// If the config file doesn't exist, skip silently.
	}

	return nil
}

// Restore extracts a backup archive into targetDir. Existing files are
// only overwritten when force is set.
func Restore(_ context.Context, archivePath, targetDir string, force bool) error {
	f, err := os.Open(archivePath)
	if err != nil {
		return fmt.Errorf("opening archive: %w", err)
	}
	defer f.Close()

	gr, err := gzip.NewReader(f)
	if err != nil {
		return fmt.Errorf("reading archive: %w", err)
	}
	defer gr.Close()

	tr := tar.NewReader(gr)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading archive entry: %w", err)
		}
		if hdr.Typeflag != tar.TypeReg {
			continue
		}

		// Reject entries that would escape the target directory.
		name := filepath.Clean(hdr.Name)
		if strings.HasPrefix(name, "..") || filepath.IsAbs(name) {
			return fmt.Errorf("archive entry escapes target directory: %s", hdr.Name)
		}

		dest := filepath.Join(targetDir, name)
		if !force {
			if _, err := os.Stat(dest); err == nil {
				return fmt.Errorf("refusing to overwrite %s (use force)", dest)
			}
		}
		if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
			return fmt.Errorf("creating directory for %s: %w", dest, err)
		}
		if err := writeFile(dest, tr, hdr.FileInfo().Mode()); err != nil {
			return fmt.Errorf("restoring %s: %w", dest, err)
		}
	}
}

func writeFile(dest string, r io.Reader, mode os.FileMode) error {
	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, r)
	return err
}

// checkpointWAL opens the database, runs a TRUNCATE checkpoint to flush the
// WAL, and closes the connection.
func checkpointWAL(dbPath string) error {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	_, err = db.Exec("PRAGMA wal_checkpoint(TRUNCATE)")
	return err
}

// addDataDirToTar walks dataDir and archives every JSON file under a
// "data/" prefix, keeping region subdirectories intact.
func addDataDirToTar(tw *tar.Writer, dataDir string) error {
	return filepath.WalkDir(dataDir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || filepath.Ext(path) != ".json" {
			return nil
		}
		rel, err := filepath.Rel(dataDir, path)
		if err != nil {
			return err
		}
		return addFileToTar(tw, path, filepath.Join("data", rel))
	})
}

// addFileToTar adds a single file to the tar archive under the given name.
func addFileToTar(tw *tar.Writer, filePath, archiveName string) error {
	f, err := os.Open(filePath)
	if err != nil {
		return err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return err
	}

	hdr, err := tar.FileInfoHeader(info, "")
	if err != nil {
		return err
	}
	hdr.Name = archiveName

	if err := tw.WriteHeader(hdr); err != nil {
		return err
	}

	_, err = io.Copy(tw, f)
	return err
}
