package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"git.sr.ht/~sircmpwn/getopt"

	"github.com/YulinWu/interpreter/pkg/driver"
	"github.com/YulinWu/interpreter/pkg/printer"
)

const cliToolVersion = "ii 0.1.0"

const usage = `Usage: ii [-hVpwq] [-r rev] [-d depth] [file | target | -]

With no argument, ii runs the first target of the nearest ii.yml, starts an
interactive session when stdin is a terminal, or reads a script from stdin.

  -h        show this help
  -V        print the version
  -p        print the parsed program instead of running it
  -w        treat warnings as errors
  -q        do not print warnings
  -r rev    read the script as of git revision rev
  -d depth  maximum call depth
`

func main() {
	os.Exit(run(os.Args, os.Stdin, os.Stdout, os.Stderr))
}

type cli struct {
	stdin          io.Reader
	stdout, stderr io.Writer

	printOnly bool
	rev       string
	cfg       driver.Config
}

func (c *cli) errorf(format string, args ...any) int {
	fmt.Fprintf(c.stderr, "ii: "+format+"\n", args...)
	return 1
}

func run(argv []string, stdin io.Reader, stdout, stderr io.Writer) int {
	c := &cli{stdin: stdin, stdout: stdout, stderr: stderr}

	opts, optind, err := getopt.Getopts(argv, "hVpwqr:d:")
	if err != nil {
		fmt.Fprintf(stderr, "ii: %s\n", err)
		fmt.Fprint(stderr, usage)
		return 2
	}
	var (
		warnFlag, quietFlag bool
		depthFlag           int
	)
	for _, opt := range opts {
		switch opt.Option {
		case 'h':
			fmt.Fprint(stdout, usage)
			return 0
		case 'V':
			fmt.Fprintln(stdout, cliToolVersion)
			return 0
		case 'p':
			c.printOnly = true
		case 'w':
			warnFlag = true
		case 'q':
			quietFlag = true
		case 'r':
			c.rev = opt.Value
		case 'd':
			n, err := strconv.Atoi(opt.Value)
			if err != nil || n <= 0 {
				return c.errorf("invalid call depth %q", opt.Value)
			}
			depthFlag = n
		}
	}
	args := argv[optind:]
	if len(args) > 1 {
		return c.errorf("unexpected arguments: %q", args[1:])
	}

	manifest, err := loadNearestManifest()
	if err != nil {
		return c.errorf("%v", err)
	}
	c.cfg = driver.DefaultConfig()
	if manifest != nil {
		c.cfg.ApplySettings(manifest.Settings)
	}
	c.cfg.ApplyEnv()
	if warnFlag {
		c.cfg.WarningsAsErrors = true
	}
	if quietFlag {
		c.cfg.Quiet = true
	}
	if depthFlag > 0 {
		c.cfg.MaxCallDepth = depthFlag
	}

	if len(args) == 0 {
		if manifest != nil {
			if target, err := manifest.DefaultTarget(); err == nil {
				return c.runTarget(manifest, target)
			}
		}
		if c.rev != "" {
			return c.errorf("-r requires a file or target")
		}
		if isTerminal(stdin) && !c.printOnly {
			return runRepl(c)
		}
		return c.runStdin()
	}

	candidate := args[0]
	if candidate == "-" {
		return c.runStdin()
	}
	if manifest != nil {
		if target, ok := manifest.FindTarget(candidate); ok {
			return c.runTarget(manifest, target)
		}
	}
	return c.runFile(candidate, c.rev)
}

// loadNearestManifest returns nil when no ii.yml exists above the working
// directory.
func loadNearestManifest() (*driver.Manifest, error) {
	path, err := driver.FindManifest(".")
	if errors.Is(err, driver.ErrNoManifest) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return driver.LoadManifest(path)
}

func (c *cli) runTarget(manifest *driver.Manifest, target *driver.TargetSpec) int {
	rev := target.Rev
	if c.rev != "" {
		rev = c.rev
	}
	return c.runFile(manifest.ScriptPath(target), rev)
}

func (c *cli) runFile(path, rev string) int {
	src, err := driver.ReadSource(path, rev)
	if err != nil {
		return c.errorf("%v", err)
	}
	label := path
	if rev != "" {
		label = path + "@" + rev
	}
	return c.execute(label, src)
}

func (c *cli) runStdin() int {
	data, err := io.ReadAll(c.stdin)
	if err != nil {
		return c.errorf("read stdin: %v", err)
	}
	return c.execute("<stdin>", string(data))
}

func (c *cli) execute(label, src string) int {
	if c.printOnly {
		prog, err := driver.Compile(src)
		if prog != nil {
			driver.ReportWarnings(c.stderr, label, prog.Warnings, c.cfg)
		}
		if err != nil {
			return c.report(label, err)
		}
		fmt.Fprint(c.stdout, printer.Print(prog.AST))
		return 0
	}
	err := driver.Run(src, driver.Options{
		Path:   label,
		Stdout: c.stdout,
		Stderr: c.stderr,
		Config: c.cfg,
	})
	if err != nil {
		return c.report(label, err)
	}
	return 0
}

func (c *cli) report(label string, err error) int {
	fmt.Fprintln(c.stderr, driver.DescribeDiagnostic(driver.ErrorDiagnostic(label, err)))
	return 1
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && isTerminalFd(f.Fd())
}
