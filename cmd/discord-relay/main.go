package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/crystal-mush/mudbits/pkg/relay"
)

// The relay daemon is the Discord half of the channel bridge. It connects
// to the Discord gateway and shuttles messages through beanstalkd tubes;
// the game server consumes and fills the other ends.
func main() {
	confFile := flag.String("conf", os.Getenv("MUDBITS_RELAY_CONF"), "Path to relay config file (env: MUDBITS_RELAY_CONF)")
	flag.Parse()

	cfg, err := relay.LoadConfig(*confFile)
	if err != nil {
		log.Fatalf("Error loading relay config: %v", err)
	}
	if cfg.Token == "" {
		log.Fatalf("No Discord token configured (set DISCORD_TOKEN)")
	}

	daemon, err := relay.NewDaemon(cfg)
	if err != nil {
		log.Fatalf("Error creating relay daemon: %v", err)
	}

	errCh := make(chan error, 1)
	go func() { errCh <- daemon.Run() }()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	select {
	case err := <-errCh:
		if err != nil {
			log.Fatalf("Relay error: %v", err)
		}
	case <-sig:
		log.Printf("Shutting down...")
		daemon.Stop()
	}
}
