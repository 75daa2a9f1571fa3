package server

import (
	"fmt"
	"log"

	"github.com/crystal-mush/mudbits/pkg/archive"
)

// cmdBackup: @backup writes a tar.gz archive of the bolt database, the
// message journal, the text files, and the config. @backup/list shows the
// archives already on disk.
func cmdBackup(g *Game, d *Descriptor, _ string, switches []string) {
	for _, sw := range switches {
		if sw == "list" {
			listBackups(g, d)
			return
		}
		d.Sendf("Unknown switch '%s'. Try @backup or @backup/list.", sw)
		return
	}

	if g.Store == nil {
		d.Send("There is no database store to back up.")
		return
	}

	params := archive.BackupParams{
		BoltSnapshot: g.Store.Snapshot,
		TextDir:      g.TextDir,
		ConfPath:     g.Conf.Path,
		OutDir:       g.Conf.BackupDir,
		MudName:      g.Conf.MudName,
		Objects:      len(g.DB.Objects),
	}
	if g.Journal != nil {
		params.JournalPath = g.Conf.JournalPath
		params.JournalCheckpoint = g.Journal.Checkpoint
	}

	path, err := archive.Create(params)
	if err != nil {
		log.Printf("backup: %v", err)
		d.Send("Backup failed, see the server log.")
		return
	}
	log.Printf("backup: wrote %s", path)
	d.Sendf("Backup written to %s.", path)
}

func listBackups(g *Game, d *Descriptor) {
	backups, err := archive.List(g.Conf.BackupDir)
	if err != nil {
		log.Printf("backup: list: %v", err)
		d.Send("Couldn't read the backup directory.")
		return
	}
	if len(backups) == 0 {
		d.Send("No backups found.")
		return
	}
	d.Send("Backups, newest first:")
	for _, b := range backups {
		d.Sendf("  %-32s %-20s %6d objects  %s",
			b.Filename, b.Timestamp, b.Objects, formatBytes(b.Size))
	}
}

// formatBytes renders a byte count in a short human form.
func formatBytes(n int64) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}
