package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/asenalabs/recall/pkg/logger"
)

func parseJSONLine(buf *bytes.Buffer) map[string]any {
	GinkgoHelper()

	var parsed map[string]any
	err := json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &parsed)
	Expect(err).NotTo(HaveOccurred())
	return parsed
}

var _ = Describe("New", func() {
	It("logs text with attributes by default", func() {
		var buf bytes.Buffer
		l := logger.New(logger.WithWriter(&buf))
		l.Info("memory stored", "owner", "ayse")

		out := buf.String()
		Expect(out).To(ContainSubstring("memory stored"))
		Expect(out).To(ContainSubstring("owner"))
		Expect(out).To(ContainSubstring("ayse"))
	})

	It("suppresses debug records at the default level", func() {
		var buf bytes.Buffer
		l := logger.New(logger.WithWriter(&buf))
		l.Debug("turn enqueued")

		Expect(buf.String()).To(BeEmpty())
	})

	It("emits debug records with WithDebug", func() {
		var buf bytes.Buffer
		l := logger.New(logger.WithWriter(&buf), logger.WithDebug(true))
		l.Debug("turn enqueued")

		Expect(buf.String()).To(ContainSubstring("turn enqueued"))
	})

	It("emits one JSON object per record with WithJSON", func() {
		var buf bytes.Buffer
		l := logger.New(logger.WithWriter(&buf), logger.WithJSON(true))
		l.Info("expired purged", "removed", 7)

		parsed := parseJSONLine(&buf)
		Expect(parsed["msg"]).To(Equal("expired purged"))
		Expect(parsed["removed"]).To(BeNumerically("==", 7))
	})

	It("renders through the pretty handler with WithPretty", func() {
		var buf bytes.Buffer
		l := logger.New(logger.WithWriter(&buf), logger.WithPretty(true))
		l.Info("store opened")

		Expect(buf.String()).To(ContainSubstring("store opened"))
	})

	It("prefers pretty when both pretty and JSON are requested", func() {
		var buf bytes.Buffer
		l := logger.New(
			logger.WithWriter(&buf),
			logger.WithJSON(true),
			logger.WithPretty(true),
		)
		l.Info("store opened")

		Expect(json.Valid(buf.Bytes())).To(BeFalse())
		Expect(buf.String()).To(ContainSubstring("store opened"))
	})

	It("duplicates output across WithWriters targets", func() {
		var term, file bytes.Buffer
		l := logger.New(logger.WithWriters(&term, &file))
		l.Info("cleanup finished")

		Expect(term.String()).To(ContainSubstring("cleanup finished"))
		Expect(file.String()).To(ContainSubstring("cleanup finished"))
	})

	It("binds fields through With", func() {
		var buf bytes.Buffer
		l := logger.New(logger.WithWriter(&buf), logger.WithJSON(true))
		l.With("service", "recall").Info("started")

		parsed := parseJSONLine(&buf)
		Expect(parsed["service"]).To(Equal("recall"))
		Expect(parsed["msg"]).To(Equal("started"))
	})
})

var _ = Describe("Nop", func() {
	It("reports every level disabled", func() {
		h := logger.Nop().Handler()
		Expect(h.Enabled(context.Background(), slog.LevelDebug)).To(BeFalse())
		Expect(h.Enabled(context.Background(), slog.LevelError)).To(BeFalse())
	})

	It("tolerates the full logger surface", func() {
		l := logger.Nop()
		Expect(func() {
			l.Debug("msg")
			l.Error("msg")
			l.With("owner", "ayse").Info("msg")
			l.WithGroup("store").Warn("msg")
		}).NotTo(Panic())
	})
})

var _ = Describe("Multi", func() {
	It("delivers each record to every logger", func() {
		var term, file bytes.Buffer
		multi := logger.Multi(
			logger.New(logger.WithWriter(&term), logger.WithPretty(true)),
			logger.New(logger.WithWriter(&file), logger.WithJSON(true)),
		)

		multi.Info("memory stored", "owner", "ayse")

		Expect(term.String()).To(ContainSubstring("memory stored"))
		parsed := parseJSONLine(&file)
		Expect(parsed["owner"]).To(Equal("ayse"))
	})

	It("skips handlers whose level excludes the record", func() {
		var quiet, verbose bytes.Buffer
		multi := logger.Multi(
			logger.New(logger.WithWriter(&quiet)),
			logger.New(logger.WithWriter(&verbose), logger.WithDebug(true)),
		)

		multi.Debug("touch skipped")

		Expect(quiet.String()).To(BeEmpty())
		Expect(verbose.String()).To(ContainSubstring("touch skipped"))
	})

	It("propagates With to every handler", func() {
		var buf bytes.Buffer
		multi := logger.Multi(logger.New(logger.WithWriter(&buf), logger.WithJSON(true)))

		multi.With("component", "worker").Info("pool started")

		parsed := parseJSONLine(&buf)
		Expect(parsed["component"]).To(Equal("worker"))
	})

	It("propagates WithGroup to every handler", func() {
		var buf bytes.Buffer
		multi := logger.Multi(logger.New(logger.WithWriter(&buf), logger.WithJSON(true)))

		multi.WithGroup("store").Info("opened", "provider", "sqlite")

		parsed := parseJSONLine(&buf)
		group, ok := parsed["store"].(map[string]any)
		Expect(ok).To(BeTrue(), "expected 'store' group in JSON output")
		Expect(group["provider"]).To(Equal("sqlite"))
	})
})
