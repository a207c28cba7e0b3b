// SPDX-License-Identifier: Apache-2.0
package main

import (
	"os"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"
	"smol/internal/lsp"
)

const lsName = "smol"

var (
	version = "0.1.0"
	handler protocol.Handler
)

func main() {
	// stdout carries the protocol, so logs go to stderr
	commonlog.Configure(1, nil)
	log := commonlog.GetLogger("smol.lsp")

	smolHandler := lsp.NewSmolHandler()

	handler = protocol.Handler{
		Initialize:                     smolHandler.Initialize,
		Initialized:                    smolHandler.Initialized,
		Shutdown:                       smolHandler.Shutdown,
		SetTrace:                       smolHandler.SetTrace,
		TextDocumentDidOpen:            smolHandler.TextDocumentDidOpen,
		TextDocumentDidClose:           smolHandler.TextDocumentDidClose,
		TextDocumentDidChange:          smolHandler.TextDocumentDidChange,
		TextDocumentCompletion:         smolHandler.TextDocumentCompletion,
		TextDocumentSemanticTokensFull: smolHandler.TextDocumentSemanticTokensFull,
	}

	s := server.NewServer(&handler, lsName, false)

	log.Infof("starting %s language server %s", lsName, version)

	if err := s.RunStdio(); err != nil {
		log.Errorf("error running %s language server: %s", lsName, err)
		os.Exit(1)
	}
}
