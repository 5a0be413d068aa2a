package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/betafcc/cpf/internal/platform/config"
	"github.com/betafcc/cpf/pkg/cpf"
	"github.com/betafcc/cpf/pkg/testutil"
)

type CLISuite struct {
	suite.Suite
	stdout *bytes.Buffer
	stderr *bytes.Buffer
}

func TestCLISuite(t *testing.T) {
	suite.Run(t, new(CLISuite))
}

func (s *CLISuite) SetupTest() {
	s.stdout = &bytes.Buffer{}
	s.stderr = &bytes.Buffer{}
}

func (s *CLISuite) newApp(stdin string, cfg config.CLI) *app {
	if cfg.Workers == 0 {
		cfg.Workers = 2
	}
	return &app{
		stdin:  strings.NewReader(stdin),
		stdout: s.stdout,
		stderr: s.stderr,
		cfg:    cfg,
		log:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func (s *CLISuite) exec(args ...string) int {
	return s.newApp("", config.CLI{}).run(context.Background(), args)
}

func (s *CLISuite) lines() []string {
	return strings.Split(strings.TrimSpace(s.stdout.String()), "\n")
}

func (s *CLISuite) TestUsage() {
	s.Equal(exitUsage, s.exec())
	s.Contains(s.stderr.String(), "Usage:")

	s.SetupTest()
	s.Equal(exitOK, s.exec("help"))
	s.Contains(s.stdout.String(), "cpfgen <command>")

	s.SetupTest()
	s.Equal(exitUsage, s.exec("bogus"))
	s.Contains(s.stderr.String(), "Unknown command: bogus")
}

func (s *CLISuite) TestGenerate() {
	s.Run("count and uf", func() {
		s.SetupTest()
		s.Equal(exitOK, s.exec("generate", "-n", "5", "-uf", "rj"))
		lines := s.lines()
		s.Len(lines, 5)
		for _, line := range lines {
			s.True(cpf.IsValid(line), line)
			s.Equal(byte('7'), line[10])
		}
	})

	s.Run("seed is reproducible", func() {
		s.SetupTest()
		s.Equal(exitOK, s.exec("generate", "-n", "3", "-seed", "42", "-compact"))
		first := s.stdout.String()

		s.SetupTest()
		s.Equal(exitOK, s.exec("generate", "-n", "3", "-seed", "42", "-compact"))
		s.Equal(first, s.stdout.String())
		for _, line := range s.lines() {
			s.Len(line, 11)
		}
	})

	s.Run("default uf from config", func() {
		s.SetupTest()
		a := s.newApp("", config.CLI{DefaultUf: cpf.SP})
		s.Equal(exitOK, a.run(context.Background(), []string{"generate", "-n", "4"}))
		for _, line := range s.lines() {
			s.Equal(byte('8'), line[10])
		}
	})

	s.Run("json output", func() {
		s.SetupTest()
		s.Equal(exitOK, s.exec("generate", "-n", "2", "-uf", "SP", "-json"))
		var docs []cpfOutput
		s.Require().NoError(json.Unmarshal(s.stdout.Bytes(), &docs))
		s.Len(docs, 2)
		for _, d := range docs {
			s.Equal([]cpf.Uf{cpf.SP}, d.Ufs)
			s.Equal(cpf.Strip(d.Cpf), d.Compact)
		}
	})

	s.Run("rejects bad requests", func() {
		s.SetupTest()
		s.Equal(exitUsage, s.exec("generate", "-n", "0"))
		s.Contains(s.stderr.String(), "count must be at least 1")

		s.SetupTest()
		s.Equal(exitUsage, s.exec("generate", "-uf", "XX"))
		s.Contains(s.stderr.String(), "uf must be a valid uf")
	})
}

func (s *CLISuite) TestValidate() {
	s.Run("arguments", func() {
		s.SetupTest()
		s.Equal(exitOK, s.exec("validate", testutil.TestCPFs.Valid, testutil.TestCPFs.ValidCompact))
		s.Equal([]string{"OK       453.178.287-91", "OK       453.178.287-91"}, s.lines())
	})

	s.Run("stdin with an invalid line", func() {
		s.SetupTest()
		a := s.newApp(testutil.TestCPFs.Valid+"\n\n"+testutil.TestCPFs.BadCheckDigit+"\n", config.CLI{})
		s.Equal(exitInvalid, a.run(context.Background(), []string{"validate"}))
		lines := s.lines()
		s.Require().Len(lines, 2)
		s.Equal("OK       453.178.287-91", lines[0])
		s.Equal("INVALID  45317828792: invalid arguments", lines[1])
	})

	s.Run("json", func() {
		s.SetupTest()
		s.Equal(exitInvalid, s.exec("validate", "-json", testutil.TestCPFs.ValidRegion2, testutil.TestCPFs.Malformed))
		var docs []validateOutput
		s.Require().NoError(json.Unmarshal(s.stdout.Bytes(), &docs))
		s.Require().Len(docs, 2)
		s.True(docs[0].Valid)
		s.Equal([]cpf.Uf{cpf.AC, cpf.AM, cpf.AP, cpf.PA, cpf.RO, cpf.RR}, docs[0].Cpf.Ufs)
		s.False(docs[1].Valid)
		s.Nil(docs[1].Cpf)
		s.Contains(docs[1].Error, "only numbers")
	})

	s.Run("metrics", func() {
		s.SetupTest()
		s.Equal(exitInvalid, s.exec("validate", "-q", "-metrics", testutil.TestCPFs.Valid, testutil.TestCPFs.BadCheckDigit))
		s.Contains(s.stderr.String(), `cpf_bulk_inputs_total{result="valid"} 1`)
		s.Contains(s.stderr.String(), `cpf_bulk_rejections_total{code="invalid_arguments"} 1`)
	})

	s.Run("quiet", func() {
		s.SetupTest()
		s.Equal(exitInvalid, s.exec("validate", "-q", testutil.TestCPFs.BadCheckDigit))
		s.Empty(s.stdout.String())
	})
}

func (s *CLISuite) TestFormat() {
	s.Equal(exitOK, s.exec("format", "45317828791"))
	s.Equal("453.178.287-91\n", s.stdout.String())

	s.SetupTest()
	s.Equal(exitOK, s.exec("format", "-uf", "rj", "-compact", "453.178.28"))
	s.Equal("45317828791\n", s.stdout.String())

	s.SetupTest()
	s.Equal(exitInvalid, s.exec("format", "453.178.28"))
	s.Contains(s.stderr.String(), "must provide an uf")

	s.SetupTest()
	s.Equal(exitUsage, s.exec("format"))
}

func (s *CLISuite) TestUfs() {
	s.Equal(exitOK, s.exec("ufs"))
	lines := s.lines()
	s.Len(lines, 27)
	s.Equal("AC  2", lines[0])

	s.SetupTest()
	s.Equal(exitOK, s.exec("ufs", "-digit", "7"))
	s.Equal([]string{"ES", "RJ"}, s.lines())

	s.SetupTest()
	s.Equal(exitOK, s.exec("ufs", "-cpf", "987.654.321-00", "-json"))
	var list []cpf.Uf
	s.Require().NoError(json.Unmarshal(s.stdout.Bytes(), &list))
	s.Equal([]cpf.Uf{cpf.DF, cpf.GO, cpf.MS, cpf.TO}, list)

	s.SetupTest()
	s.Equal(exitUsage, s.exec("ufs", "-cpf", "45317828792"))

	s.SetupTest()
	s.Equal(exitUsage, s.exec("ufs", "-digit", "12"))
}
