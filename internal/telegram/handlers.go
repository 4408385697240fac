package telegram

import (
	"context"
	"errors"
	"fmt"
	"log"
	"regexp"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"financeCompareBot/internal/charts"
	"financeCompareBot/internal/compare"
	"financeCompareBot/internal/finance"
	"financeCompareBot/internal/metrics"
	"financeCompareBot/internal/storage"
	"financeCompareBot/internal/translate"
)

var (
	// /compare SYM1 SYM2 [years]
	reCompare = regexp.MustCompile(`^/compare(?:@[\w_]+)?\s+([A-Za-z0-9\.^_=+-]+)\s+([A-Za-z0-9\.^_=+-]+)(?:\s+(\d+))?$`)
	// /recent
	reRecent = regexp.MustCompile(`^/recent(?:@[\w_]+)?$`)
	// /help or /start
	reHelp = regexp.MustCompile(`^/(help|start)(?:@[\w_]+)?$`)
)

// CAGR is reported at these horizons (years), capped by the requested window.
var cagrHorizons = []int{1, 3, 5}

type Handlers struct {
	api        *tgbotapi.BotAPI
	store      *storage.Store
	translator *translate.Translator
	lang       string
}

func NewHandlers(api *tgbotapi.BotAPI, store *storage.Store, openAIKey, descriptionLang string) *Handlers {
	return &Handlers{
		api:        api,
		store:      store,
		translator: translate.NewTranslator(openAIKey),
		lang:       descriptionLang,
	}
}

func (h *Handlers) HandleMessage(m *tgbotapi.Message) {
	txt := strings.TrimSpace(m.Text)
	switch {
	case reCompare.MatchString(txt):
		g := reCompare.FindStringSubmatch(txt)
		sym1 := strings.ToUpper(g[1])
		sym2 := strings.ToUpper(g[2])
		years := 5
		if g[3] != "" {
			if n, err := strconv.Atoi(g[3]); err == nil {
				years = n
			}
		}
		if years < 1 {
			years = 1
		}
		if years > 10 {
			years = 10
		}
		if sym1 == sym2 {
			h.reply(m.Chat.ID, "Please provide two different symbols, e.g. /compare AAPL MSFT 5")
			return
		}
		h.handleCompare(m.Chat.ID, sym1, sym2, years)

	case reRecent.MatchString(txt):
		h.handleRecent(m.Chat.ID)

	case reHelp.MatchString(txt):
		h.handleHelp(m.Chat.ID)
	}
}

// fetched bundles one symbol's provider results. Profile failures degrade to
// placeholders; only a missing price series is worth a user-visible warning.
type fetched struct {
	profile   finance.Profile
	hasInfo   bool
	series    metrics.Series
	seriesErr error
}

func (h *Handlers) handleCompare(chatID int64, sym1, sym2 string, years int) {
	reqID := uuid.NewString()
	log.Printf("compare %s: %s vs %s over %dy", reqID, sym1, sym2, years)
	h.reply(chatID, fmt.Sprintf("Comparing %s vs %s over %d year(s)…", sym1, sym2, years))

	// The two fetches are independent; either may fail without affecting the other.
	var res [2]fetched
	g := new(errgroup.Group)
	for i, sym := range []string{sym1, sym2} {
		i, sym := i, sym
		g.Go(func() error {
			p, err := finance.FetchProfile(sym)
			if err != nil {
				log.Printf("compare %s: profile %s: %v", reqID, sym, err)
				res[i].profile = finance.PlaceholderProfile(sym)
			} else {
				res[i].profile = p
				res[i].hasInfo = true
			}
			res[i].series, res[i].seriesErr = finance.FetchDailySeries(sym, years)
			if res[i].seriesErr != nil {
				log.Printf("compare %s: series %s: %v", reqID, sym, res[i].seriesErr)
			}
			return nil
		})
	}
	_ = g.Wait()

	h.sendProfiles(chatID, &res)
	h.sendWarnings(chatID, sym1, sym2, &res)

	s1, s2 := res[0].series, res[1].series
	if res[0].seriesErr == nil && res[1].seriesErr == nil && s1.Len() > 0 && s2.Len() > 0 {
		h.sendPerformanceChart(chatID, sym1, sym2, s1, s2, years)
		h.sendMetrics(chatID, sym1, sym2, s1, s2, years)
		h.sendRollingVolatilityChart(chatID, sym1, sym2, s1, s2)
	}

	rec := storage.Comparison{
		ID: reqID, ChatID: chatID, Symbol1: sym1, Symbol2: sym2, Years: years,
		TS: time.Now().Unix(),
	}
	if err := h.store.SaveComparison(rec); err != nil {
		log.Printf("compare %s: save: %v", reqID, err)
	}
}

func (h *Handlers) sendProfiles(chatID int64, res *[2]fetched) {
	var b strings.Builder
	for i := range res {
		p := res[i].profile
		desc := p.Description
		if res[i].hasInfo {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			desc = h.translator.Translate(ctx, desc, h.lang)
			cancel()
		}
		fmt.Fprintf(&b, "📌 *%s* (%s)\n", escapeMarkdown(p.Name), p.Symbol)
		fmt.Fprintf(&b, "Sector: %s\n", escapeMarkdown(p.Sector))
		fmt.Fprintf(&b, "Industry: %s\n", escapeMarkdown(p.Industry))
		fmt.Fprintf(&b, "Country: %s\n", escapeMarkdown(p.Country))
		fmt.Fprintf(&b, "Market cap: %s %s\n\n", p.MarketCap, p.Currency)
		fmt.Fprintf(&b, "%s\n\n", escapeMarkdown(desc))
	}
	msg := tgbotapi.NewMessage(chatID, strings.TrimSpace(b.String()))
	msg.ParseMode = "Markdown"
	h.api.Send(msg)
}

func (h *Handlers) sendWarnings(chatID int64, sym1, sym2 string, res *[2]fetched) {
	syms := []string{sym1, sym2}
	for i := range res {
		if res[i].seriesErr != nil || res[i].series.Len() == 0 {
			reason := "no historical data for the requested window"
			if res[i].seriesErr != nil && !errors.Is(res[i].seriesErr, finance.ErrNoData) {
				reason = "price history lookup failed"
			}
			h.reply(chatID, fmt.Sprintf("⚠️ %s: %s — price comparison skipped", syms[i], reason))
		}
	}
}

func (h *Handlers) sendPerformanceChart(chatID int64, sym1, sym2 string, s1, s2 metrics.Series, years int) {
	n1, ok1 := metrics.Normalize(s1)
	n2, ok2 := metrics.Normalize(s2)
	if !ok1 || !ok2 {
		h.reply(chatID, "⚠️ Not enough price data to chart normalized performance")
		return
	}
	img, err := charts.PerformanceChart(sym1, sym2, n1, n2, years)
	if err != nil {
		h.reply(chatID, "Performance chart failed: "+err.Error())
		return
	}
	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileBytes{Name: sym1 + "_" + sym2 + "_perf.png", Bytes: img})
	photo.Caption = fmt.Sprintf("%s vs %s • normalized to 100 • %dY", sym1, sym2, years)
	h.api.Send(photo)
}

func (h *Handlers) sendMetrics(chatID int64, sym1, sym2 string, s1, s2 metrics.Series, years int) {
	var b strings.Builder
	fmt.Fprintf(&b, "📊 *%s vs %s* • %dY\n\n", sym1, sym2, years)

	b.WriteString("*Annualized return (CAGR)*\n")
	for _, hz := range cagrHorizons {
		if hz > years {
			continue
		}
		c1 := metrics.CAGR(finance.WindowYears(s1, hz), float64(hz))
		c2 := metrics.CAGR(finance.WindowYears(s2, hz), float64(hz))
		b.WriteString(metricLine(fmt.Sprintf("%dY", hz), c1, c2, false))
		b.WriteByte('\n')
	}

	b.WriteString("\n*Risk*\n")
	b.WriteString(metricLine("Volatility", metrics.Volatility(s1), metrics.Volatility(s2), true))
	b.WriteByte('\n')
	b.WriteString(metricLine("Max drawdown", metrics.MaxDrawdown(s1), metrics.MaxDrawdown(s2), true))
	b.WriteByte('\n')

	b.WriteString("\n🟢 favorable for " + sym1 + " • 🔴 unfavorable • 🔵 even")
	msg := tgbotapi.NewMessage(chatID, b.String())
	msg.ParseMode = "Markdown"
	h.api.Send(msg)
}

func (h *Handlers) sendRollingVolatilityChart(chatID int64, sym1, sym2 string, s1, s2 metrics.Series) {
	rv1 := metrics.RollingVolatility(s1, metrics.DefaultRollingWindow)
	rv2 := metrics.RollingVolatility(s2, metrics.DefaultRollingWindow)
	if len(rv1) == 0 || len(rv2) == 0 {
		// Shorter history than the look-back window; nothing to draw.
		return
	}
	img, err := charts.RollingVolatilityChart(sym1, sym2, rv1, rv2)
	if err != nil {
		h.reply(chatID, "Volatility chart failed: "+err.Error())
		return
	}
	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileBytes{Name: sym1 + "_" + sym2 + "_vol.png", Bytes: img})
	photo.Caption = fmt.Sprintf("%s vs %s • rolling %d-day annualized volatility", sym1, sym2, metrics.DefaultRollingWindow)
	h.api.Send(photo)
}

func (h *Handlers) handleRecent(chatID int64) {
	recs, err := h.store.RecentComparisons(chatID, 5)
	if err != nil {
		h.reply(chatID, "Recent lookup failed: "+err.Error())
		return
	}
	if len(recs) == 0 {
		h.reply(chatID, "No comparisons yet. Try /compare AAPL MSFT 5")
		return
	}
	var b strings.Builder
	b.WriteString("Recent comparisons:\n")
	for _, r := range recs {
		fmt.Fprintf(&b, "- %s vs %s • %dY • %s\n",
			r.Symbol1, r.Symbol2, r.Years, time.Unix(r.TS, 0).UTC().Format("2006-01-02 15:04"))
	}
	h.reply(chatID, b.String())
}

func (h *Handlers) handleHelp(chatID int64) {
	help := "Commands\n\n" +
		"- /compare S1 S2 [years] - Side-by-side comparison: profiles, normalized performance,\n" +
		"  CAGR at 1/3/5 years, annualized volatility, max drawdown, rolling volatility (default: 5, max: 10)\n" +
		"- /recent - Your last comparisons\n" +
		"\nVolatility and drawdown are lower-is-better; badges are oriented for the first symbol."
	h.reply(chatID, help)
}

func (h *Handlers) reply(chatID int64, text string) {
	h.api.Send(tgbotapi.NewMessage(chatID, text))
}

// metricLine formats one comparison row. Absent metrics render as n/a with no
// badge rather than a misleading zero.
func metricLine(label string, a, b metrics.Metric, lowerIsBetter bool) string {
	out, ok := compare.Compare(a, b, lowerIsBetter, "%")
	if !ok {
		return label + ": n/a"
	}
	return fmt.Sprintf("%s: %.2f%% vs %.2f%% • %s %s",
		label, a.Value, b.Value, badgeIcon(out.Direction), out.Badge)
}

func badgeIcon(d compare.Direction) string {
	switch d {
	case compare.Favorable:
		return "🟢"
	case compare.Unfavorable:
		return "🔴"
	default:
		return "🔵"
	}
}

var markdownEscaper = strings.NewReplacer("_", "\\_", "*", "\\*", "[", "\\[", "`", "\\`")

func escapeMarkdown(s string) string { return markdownEscaper.Replace(s) }
