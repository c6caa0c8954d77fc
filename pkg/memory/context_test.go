package memory_test

import (
	"context"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/asenalabs/recall/pkg/memory"
)

var _ = Describe("BuildContext", func() {
	var (
		mgr *memory.Manager
		ctx context.Context
	)

	BeforeEach(func() {
		mgr, _ = newTestManager()
		ctx = context.Background()
	})

	It("returns an empty string when nothing is stored", func() {
		Expect(mgr.BuildContext(ctx, "ayse", "merhaba", 0)).To(BeEmpty())
	})

	It("assembles sections in a fixed order", func() {
		mgr.LogTurn(ctx, memory.TurnParams{Owner: "ayse", UserMessage: "merhaba", AssistantResponse: "Merhaba!"})
		mgr.Remember(ctx, memory.UpsertParams{Owner: "ayse", Content: "Kahveyi sütlü sever"})
		mgr.AddShortTerm("ayse", "kapı açık")

		block := mgr.BuildContext(ctx, "ayse", "kahve", 0)

		conv := strings.Index(block, "--- Recent Conversation ---")
		mem := strings.Index(block, "--- Relevant Memories ---")
		sess := strings.Index(block, "--- Current Session ---")

		Expect(conv).To(BeNumerically(">=", 0))
		Expect(mem).To(BeNumerically(">", conv))
		Expect(sess).To(BeNumerically(">", mem))
	})

	It("formats conversation turns as speaker lines", func() {
		mgr.LogTurn(ctx, memory.TurnParams{Owner: "ayse", UserMessage: "merhaba", AssistantResponse: "Merhaba!"})

		block := mgr.BuildContext(ctx, "ayse", "", 0)
		Expect(block).To(ContainSubstring("ayse: merhaba"))
		Expect(block).To(ContainSubstring("Asena: Merhaba!"))
	})

	It("formats memories and session entries as bullets", func() {
		mgr.Remember(ctx, memory.UpsertParams{Owner: "ayse", Content: "Fındık alerjisi var"})
		mgr.AddShortTerm("ayse", "misafir geldi")

		block := mgr.BuildContext(ctx, "ayse", "fındık", 0)
		Expect(block).To(ContainSubstring("- Fındık alerjisi var"))
		Expect(block).To(ContainSubstring("- misafir geldi"))
	})

	It("omits empty sections instead of printing placeholders", func() {
		mgr.Remember(ctx, memory.UpsertParams{Owner: "ayse", Content: "Kahveyi sütlü sever"})

		block := mgr.BuildContext(ctx, "ayse", "kahve", 0)
		Expect(block).NotTo(ContainSubstring("--- Recent Conversation ---"))
		Expect(block).NotTo(ContainSubstring("--- Current Session ---"))
		Expect(block).To(ContainSubstring("--- Relevant Memories ---"))
	})

	It("includes only the tail of the session buffer", func() {
		for _, payload := range []string{"bir", "iki", "üç", "dört", "beş"} {
			mgr.AddShortTerm("ayse", payload)
		}

		block := mgr.BuildContext(ctx, "ayse", "", 0)
		Expect(block).NotTo(ContainSubstring("- bir"))
		Expect(block).NotTo(ContainSubstring("- iki"))
		Expect(block).To(ContainSubstring("- üç"))
		Expect(block).To(ContainSubstring("- dört"))
		Expect(block).To(ContainSubstring("- beş"))
	})

	It("truncates to the character budget plus an ellipsis", func() {
		mgr.Remember(ctx, memory.UpsertParams{Owner: "ayse", Content: strings.Repeat("kahve ", 100)})

		block := mgr.BuildContext(ctx, "ayse", "kahve", 50)
		Expect(block).To(HaveSuffix("..."))
		Expect(len([]rune(block))).To(Equal(53))
	})

	It("counts the budget in runes, not bytes", func() {
		mgr.Remember(ctx, memory.UpsertParams{Owner: "ayse", Content: strings.Repeat("şü", 200)})

		block := mgr.BuildContext(ctx, "ayse", "", 40)
		Expect(len([]rune(block))).To(Equal(43))
	})

	It("does not truncate blocks within the budget", func() {
		mgr.Remember(ctx, memory.UpsertParams{Owner: "ayse", Content: "kısa"})

		block := mgr.BuildContext(ctx, "ayse", "kısa", 4000)
		Expect(block).NotTo(HaveSuffix("..."))
	})
})
