package main

import (
	"errors"
	"log"
	"os"

	"git.lost.host/meutraa/yargcore/internal/config"
)

// errFailed is returned when a replay did not verify. Its report has already
// been printed.
var errFailed = errors.New("verification failed")

func main() {
	if err := run(); nil != err {
		if errors.Is(err, errFailed) {
			os.Exit(1)
		}
		log.Fatalln(err)
	}
}

func run() error {
	command, err := config.Parse(os.Args[1:])
	if nil != err {
		return err
	}

	p := &Program{}
	if err := p.Init(command == config.History.FullCommand()); nil != err {
		return err
	}
	defer p.Deinit()

	switch command {
	case config.Verify.FullCommand():
		return p.Verify(*config.VerifyReplay, *config.VerifyDirectory, *config.VerifyFPS)
	case config.Record.FullCommand():
		output := *config.RecordOutput
		if output == "" {
			output = *config.RecordReplay
		}
		return p.Record(*config.RecordReplay, *config.RecordDirectory, output)
	case config.Simulate.FullCommand():
		return p.Simulate(*config.SimulateReplay, *config.SimulateDirectory, analyzerOptions())
	case config.DumpInputs.FullCommand():
		return p.DumpInputs(*config.DumpInputsReplay, *config.Raw, *config.RawFrame)
	case config.History.FullCommand():
		return p.History(*config.HistoryDirectory)
	}
	return errors.New("unknown command " + command)
}
