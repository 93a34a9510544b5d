// Package logger provides leveled diagnostic logging for clienv commands.
//
// # Verbosity Levels
//
//   - --verbose: shows info and warning messages
//   - --debug: shows everything, including debug and error details
//
// Without flags only WarnfAlways output is shown. All output goes to stderr
// so that `clienv get --raw` can be used in pipelines.
//
// # Usage
//
//	log := Logger{Verbose: verbose, Debug: debug}
//	log.Infof("Loaded %d variables", n)
//
// The root command builds the logger in its PersistentPreRun.
package logger
