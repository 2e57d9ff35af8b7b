package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/athollus/mathexpr"
)

func main() {
	log.SetFlags(0)
	var (
		inname    string
		with      [][2]string
		big, echo bool
		prec      int
	)
	addwith := func(s string) error {
		d := strings.SplitN(s, "=", 2)
		if len(d) != 2 {
			return fmt.Errorf(`variable definitions must be "name=value", not %q`, s)
		}
		with = append(with, [2]string{strings.TrimSpace(d[0]), strings.TrimSpace(d[1])})
		return nil
	}
	flag.StringVar(&inname, "in", "", "input file (default stdin if no args given)")
	flag.Func("given", "name=value variable definition (any number of times)", addwith)
	flag.BoolVar(&big, "big", false, "compute with arbitrary-precision numbers")
	flag.IntVar(&prec, "p", mathexpr.DefaultPrecision, "precision of BigNumber calculations in bits")
	flag.BoolVar(&echo, "echo", false, "print parse trees")
	flag.Parse()
	if prec < 0 {
		log.Fatalf("precision (%d) must be positive", prec)
	}

	host := mathexpr.DefaultHost()
	if big {
		host = mathexpr.BigHost(uint(prec))
	}
	scope := mathexpr.NewScope()
	for _, d := range with {
		v, err := mathexpr.Eval(d[1])
		if err != nil {
			log.Fatalf("setting %s: %v", d[0], err)
		}
		scope.Set(d[0], v)
	}

	switch {
	case flag.NArg() > 0:
		for _, arg := range flag.Args() {
			if err := evalLine(host, scope, arg, echo, os.Stdout); err != nil {
				log.Fatal(err)
			}
		}
	case inname != "" && inname != "-":
		f, err := os.Open(inname)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		if err := evalLines(host, scope, f, echo); err != nil {
			log.Fatal(err)
		}
	case isatty.IsTerminal(os.Stdin.Fd()):
		if err := runREPL(host, scope); err != nil {
			log.Fatal(err)
		}
	default:
		if err := evalLines(host, scope, os.Stdin, echo); err != nil {
			log.Fatal(err)
		}
	}
}

// evalLines evaluates each nonempty line of r in order, sharing the scope
// so that assignments carry forward.
func evalLines(host *mathexpr.Host, scope *mathexpr.Scope, r io.Reader, echo bool) error {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if err := evalLine(host, scope, line, echo, os.Stdout); err != nil {
			fmt.Println(err)
		}
	}
	return sc.Err()
}

func evalLine(host *mathexpr.Host, scope *mathexpr.Scope, src string, echo bool, w io.Writer) error {
	n, err := mathexpr.Parse(src)
	if err != nil {
		return err
	}
	if echo {
		fmt.Fprintf(w, "%v : ", n)
	}
	c, err := mathexpr.Compile(n, host)
	if err != nil {
		return err
	}
	v, err := c.Eval(scope)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, v)
	return nil
}
