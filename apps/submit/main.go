package main

import (
	"log"
	"os"

	"github.com/tmugisha/amali/core"
	"github.com/tmugisha/amali/core/window"
	"github.com/tmugisha/amali/services/apiclient"
	identitysvc "github.com/tmugisha/amali/services/identity"
	logsvc "github.com/tmugisha/amali/services/logger"
	filekv "github.com/tmugisha/amali/storage/kvstore/file"
	rediskv "github.com/tmugisha/amali/storage/kvstore/redis"
)

func main() {
	defer os.Exit(0)

	conf := core.LoadConfig()

	logger := logsvc.NewStdLogger(log.New(os.Stderr, "", 0))

	// the local store holds the session, submission windows and submitted
	// flags. Lab deployments point REDIS_ADDR at a shared instance so the
	// window follows the student across machines; the default is a local
	// session file.
	var kv core.KeyValueStore
	var err error
	if conf.Redis.Addr != "" {
		kv, err = rediskv.Open(conf.Redis)
	} else {
		kv, err = filekv.Open(conf.Client.SessionFile)
	}
	if err != nil {
		logger.Fatal("opening session store", err)
	}

	cli := commandLine{
		conf:    conf,
		kv:      kv,
		api:     apiclient.New(conf.Client.APIBaseURL),
		idp:     identitysvc.NewProvider(kv),
		windows: window.NewStore(kv),
		logger:  logger,
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Error(err.Error(), err)
		}
		os.Exit(1)
	}
}
