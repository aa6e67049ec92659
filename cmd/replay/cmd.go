// Package replay feeds a captured gateway event log through a session and
// logs the semantic events it produces. The log format is one JSON envelope
// per line, the same shape the transport hands to SubmitEvent.
package replay

import (
	"bufio"
	"encoding/json"
	"io"
	"os"

	"emperror.dev/errors"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/dustin/go-humanize"
	"github.com/getsentry/sentry-go"
	"github.com/starshine-sys/guildmirror/common"
	"github.com/starshine-sys/guildmirror/common/log"
	"github.com/starshine-sys/guildmirror/events"
	"github.com/starshine-sys/guildmirror/stats"
	"github.com/urfave/cli/v2"
)

var Command = &cli.Command{
	Name:      "replay",
	Usage:     "Replay a captured gateway event log",
	ArgsUsage: "<file, or - for stdin>",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Value:   "config.toml",
			Usage:   "config file path",
		},
		&cli.BoolFlag{
			Name:    "quiet",
			Aliases: []string{"q"},
			Usage:   "only log the final summary",
		},
	},
	Action: run,
}

func run(c *cli.Context) error {
	if c.NArg() != 1 {
		return errors.New("expected exactly one argument, the event log file")
	}

	conf, err := ReadConfig(c.String("config"))
	if err != nil {
		return errors.Wrap(err, "reading config")
	}

	var hub *sentry.Hub
	if conf.Auth.Sentry != "" {
		err := sentry.Init(sentry.ClientOptions{
			Dsn:     conf.Auth.Sentry,
			Release: common.Version(),
		})
		if err != nil {
			return errors.Wrap(err, "setting up sentry")
		}
		hub = sentry.CurrentHub()
	}

	var statsClient *stats.Client
	if conf.Auth.Influx.URL != "" {
		statsClient = stats.New(
			conf.Auth.Influx.URL,
			conf.Auth.Influx.Token,
			conf.Auth.Influx.Organization,
			conf.Auth.Influx.Database,
		)
	}

	sess := events.New(events.Config{
		Stats: statsClient,
		Hub:   hub,
		RequestMembers: func(id discord.GuildID) {
			// a captured log has the chunk responses inline already
			log.Debugf("guild %v wants member chunks", id)
		},
	})
	defer sess.Close()

	if !c.Bool("quiet") {
		addLogListeners(sess)
	}

	var r io.Reader = os.Stdin
	if name := c.Args().First(); name != "-" {
		f, err := os.Open(name)
		if err != nil {
			return errors.Wrap(err, "opening event log")
		}
		defer f.Close()
		r = f
	}

	var submitted, malformed uint64

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 1024*1024), 16*1024*1024)
	for sc.Scan() {
		line := sc.Bytes()
		if len(line) == 0 {
			continue
		}

		var env events.Envelope
		if err := json.Unmarshal(line, &env); err != nil {
			malformed++
			log.Errorf("skipping malformed line: %v", err)
			continue
		}

		sess.SubmitEvent(env)
		submitted++
	}
	if err := sc.Err(); err != nil {
		return errors.Wrap(err, "reading event log")
	}

	guilds, _ := sess.Cabinet.Guilds()

	log.Infof("replayed %v events (%v malformed lines skipped), %v guilds cached, %v dependency keys still waiting",
		humanize.Comma(int64(submitted)), malformed, len(guilds), sess.Deferred.Count())

	statsClient.Flush()
	return nil
}
