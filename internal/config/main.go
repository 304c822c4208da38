package config

import (
	"gopkg.in/alecthomas/kingpin.v2"
)

var (
	App = kingpin.New("yargcore", "Replay verification for the rhythm game scoring engines").Version("0.3.0")

	Trace    = App.Flag("trace", "Print engine contract violations to stderr").Bool()
	Database = App.Flag("db", "Verification history database, empty to keep no history").Default("").String()

	Verify          = App.Command("verify", "Rerun a replay and compare it with its recorded stats")
	VerifyReplay    = Verify.Arg("replay", "Replay file").Required().ExistingFile()
	VerifyDirectory = Verify.Arg("directory", "Chart directory").Required().ExistingDir()
	VerifyFPS       = Verify.Flag("fps", "Frame rate to rerun at, 0 for a single update").Default("0").Float64()

	Record          = App.Command("record", "Fill in the recorded stats of a replay from a single update run")
	RecordReplay    = Record.Arg("replay", "Replay file").Required().ExistingFile()
	RecordDirectory = Record.Arg("directory", "Chart directory").Required().ExistingDir()
	RecordOutput    = Record.Flag("output", "Where to write the recorded replay, defaults to the input").Short('o').String()

	Simulate          = App.Command("simulate_fps", "Rerun a replay at many jittered frame rates")
	SimulateReplay    = Simulate.Arg("replay", "Replay file").Required().ExistingFile()
	SimulateDirectory = Simulate.Arg("directory", "Chart directory").Required().ExistingDir()
	Runs              = Simulate.Flag("runs", "Number of runs").Default("100").Int()
	Workers           = Simulate.Flag("workers", "Runs played at once").Default("4").Int()
	Seed              = Simulate.Flag("seed", "Seed of the first run").Default("1").Int64()
	BaseFPS           = Simulate.Flag("base-fps", "Frame rate of the first run").Default("21").Int()

	DumpInputs       = App.Command("dump_inputs", "Print the inputs of every frame of a replay")
	DumpInputsReplay = DumpInputs.Arg("replay", "Replay file, or a raw .bin input dump").Required().ExistingFile()
	Raw              = DumpInputs.Flag("raw", "Write the inputs of one frame as a raw dump to this file").String()
	RawFrame         = DumpInputs.Flag("frame", "Frame written by --raw").Default("0").Int()

	History          = App.Command("history", "List the stored verifications of a chart")
	HistoryDirectory = History.Arg("directory", "Chart directory").Required().ExistingDir()
)

// Parse parses args and returns the selected command.
func Parse(args []string) (string, error) {
	return App.Parse(args)
}
