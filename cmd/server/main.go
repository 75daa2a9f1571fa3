package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/crystal-mush/mudbits/pkg/archive"
	"github.com/crystal-mush/mudbits/pkg/boltstore"
	"github.com/crystal-mush/mudbits/pkg/gamedb"
	"github.com/crystal-mush/mudbits/pkg/relay"
	"github.com/crystal-mush/mudbits/pkg/server"
)

// envDefault returns the environment variable value if set, otherwise the fallback.
func envDefault(envVar, fallback string) string {
	if v := os.Getenv(envVar); v != "" {
		return v
	}
	return fallback
}

func main() {
	confFile := flag.String("conf", envDefault("MUDBITS_CONF", ""), "Path to game config file (env: MUDBITS_CONF)")
	boltPath := flag.String("bolt", envDefault("MUDBITS_BOLT", ""), "Path to bbolt database, overrides config (env: MUDBITS_BOLT)")
	port := flag.Int("port", 0, "TCP port to listen on, overrides config (env: MUDBITS_PORT)")
	textDir := flag.String("textdir", envDefault("MUDBITS_TEXTDIR", ""), "Path to text files directory, overrides config (env: MUDBITS_TEXTDIR)")
	restorePath := flag.String("restore", "", "Restore game data from a backup archive and exit")
	flag.Parse()

	gc, err := server.LoadGameConf(*confFile)
	if err != nil {
		log.Fatalf("Error loading game config: %v", err)
	}
	if *confFile != "" {
		log.Printf("Loaded game config from %s", *confFile)
	}
	if *port == 0 {
		if envPort := os.Getenv("MUDBITS_PORT"); envPort != "" {
			if p, err := strconv.Atoi(envPort); err == nil {
				*port = p
			}
		}
	}
	if *port != 0 {
		gc.Port = *port
	}
	if *boltPath != "" {
		gc.DBPath = *boltPath
	}
	if *textDir != "" {
		gc.TextDir = *textDir
	}

	if *restorePath != "" {
		res, err := archive.Restore(archive.RestoreParams{
			ArchivePath: *restorePath,
			BoltDest:    gc.DBPath,
			JournalDest: gc.JournalPath,
			TextDest:    gc.TextDir,
			ConfDest:    gc.Path,
			Stdin:       os.Stdin,
			Stdout:      os.Stdout,
		})
		if err != nil {
			log.Fatalf("Restore failed: %v", err)
		}
		for _, w := range res.Warnings {
			log.Printf("Restore warning: %s", w)
		}
		log.Printf("Restored %d files from %s", res.FilesRestored, *restorePath)
		return
	}

	store, err := boltstore.Open(gc.DBPath)
	if err != nil {
		log.Fatalf("Error opening database %s: %v", gc.DBPath, err)
	}
	defer store.Close()
	if err := store.Load(); err != nil {
		log.Fatalf("Error loading database: %v", err)
	}
	db := store.DB()
	log.Printf("Database loaded: %d objects, %d channels", len(db.Objects), len(db.Channels))

	g := server.NewGame(db, gc)
	g.Store = store
	bootstrapWorld(g)

	if gc.WebEnabled {
		g.Metrics = server.NewMetrics()
	}

	if gc.JournalPath != "" {
		journal, err := server.OpenJournal(gc.JournalPath, gc.JournalRetention)
		if err != nil {
			log.Fatalf("Error opening journal: %v", err)
		}
		defer journal.Close()
		g.Journal = journal
		g.EventBus.SubscribeGlobal(journal)
		log.Printf("Journal enabled: %s", gc.JournalPath)
	}

	if n := g.RestoreRelayBindings(); n > 0 {
		log.Printf("Restored %d Discord bridge bindings", n)
	}
	if gc.RelayEnabled {
		rc, err := relay.LoadConfig(gc.RelayConf)
		if err != nil {
			log.Fatalf("Error loading relay config: %v", err)
		}
		g.RelayConf = rc
		runner, err := relay.NewRunner(rc, g.RelayBots, g)
		if err != nil {
			log.Printf("WARNING: relay disabled, queue unreachable: %v", err)
		} else {
			g.Relay = runner
			runner.Start()
			defer runner.Stop()
			log.Printf("Relay enabled via %s", rc.BeanstalkAddr())
		}
	}

	if gc.TextDir != "" {
		if err := g.Texts.Watch(); err != nil {
			log.Printf("WARNING: text file watcher: %v", err)
		} else {
			defer g.Texts.Close()
		}
	}

	g.Queue.Start()
	defer g.Queue.Stop()
	g.ResumeGrowth()

	srv := server.NewServer(g)
	if err := srv.Start(); err != nil {
		log.Fatalf("Server error: %v", err)
	}

	var web *server.WebServer
	if gc.WebEnabled {
		web = server.NewWebServer(g)
		if err := web.Start(); err != nil {
			log.Fatalf("Web server error: %v", err)
		}
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig
	log.Printf("Shutting down...")
	if web != nil {
		web.Stop()
	}
	srv.Stop()
}

// bootstrapWorld makes sure a fresh database has a starting room and the
// public channel before the first player connects.
func bootstrapWorld(g *server.Game) {
	start := gamedb.DBRef(g.Conf.PlayerStartingRoom)
	if g.DB.Get(start) == nil {
		room := g.DB.NewObject(gamedb.TypeRoom, "Limbo", gamedb.Nothing)
		room.Desc = "You float in a formless void."
		g.Conf.PlayerStartingRoom = int(room.Ref)
		g.Conf.PlayerStartingHome = int(room.Ref)
		g.PersistObject(room)
		log.Printf("Created starting room %s (#%d)", room.Name, room.Ref)
	}
	if g.Conf.PublicChannel != "" {
		g.EnsureChannel(g.Conf.PublicChannel, gamedb.Nothing)
	}
}
