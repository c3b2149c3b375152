package browser

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"followup-srv/internal/automation"
	"followup-srv/internal/model"

	"github.com/chromedp/chromedp"
)

const (
	pollFound = "found"
	pollEmpty = "empty"
)

func allocatorOptions(cfg Config) []chromedp.ExecAllocatorOption {
	opts := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)
	opts = append(opts, chromedp.Flag("headless", cfg.Headless))
	if cfg.NoSandbox {
		opts = append(opts, chromedp.NoSandbox)
	}
	if cfg.ChromePath != "" {
		opts = append(opts, chromedp.ExecPath(cfg.ChromePath))
	}
	if cfg.UserAgent != "" {
		opts = append(opts, chromedp.UserAgent(cfg.UserAgent))
	}
	return opts
}

// chooseSearchInput picks the input and key: claim selector with the claim number,
// then plate selector with the plate, then the generic input with whichever key exists.
func chooseSearchInput(sel model.SelectorMap, primaryKey, secondaryKey string) (string, string, error) {
	primaryKey = strings.TrimSpace(primaryKey)
	secondaryKey = strings.TrimSpace(secondaryKey)
	if primaryKey == "" && secondaryKey == "" {
		return "", "", automation.ErrMissingKeys
	}
	if primaryKey != "" && sel.Has(SelSearchClaimInput) {
		return sel.Get(SelSearchClaimInput), primaryKey, nil
	}
	if secondaryKey != "" && sel.Has(SelSearchPlateInput) {
		return sel.Get(SelSearchPlateInput), secondaryKey, nil
	}
	if sel.Has(SelSearchInput) {
		if primaryKey != "" {
			return sel.Get(SelSearchInput), primaryKey, nil
		}
		return sel.Get(SelSearchInput), secondaryKey, nil
	}
	return "", "", fmt.Errorf("%w: no search input for the supplied keys", automation.ErrMissingSelector)
}

// resultRowSelector falls back to the record link when no row selector is set.
func resultRowSelector(sel model.SelectorMap) string {
	if sel.Has(SelResultRow) {
		return sel.Get(SelResultRow)
	}
	return sel.Get(SelRecordLink)
}

// resultPollExpr evaluates to "found", "empty" or false.
func resultPollExpr(rowSel, emptySel string) string {
	row, _ := json.Marshal(rowSel)
	expr := fmt.Sprintf(`document.querySelector(%s) !== null ? %q`, row, pollFound)
	if emptySel != "" {
		empty, _ := json.Marshal(emptySel)
		expr += fmt.Sprintf(` : (document.querySelector(%s) !== null ? %q : false)`, empty, pollEmpty)
	} else {
		expr += " : false"
	}
	return "(" + expr + ")"
}

// presencePollExpr evaluates to true once sel matches.
func presencePollExpr(sel string) string {
	q, _ := json.Marshal(sel)
	return fmt.Sprintf("document.querySelector(%s) !== null", q)
}

func isReportMIME(mime string) bool {
	mime = strings.ToLower(strings.TrimSpace(mime))
	if i := strings.Index(mime, ";"); i >= 0 {
		mime = strings.TrimSpace(mime[:i])
	}
	switch mime {
	case "application/pdf", "application/octet-stream", "application/x-pdf":
		return true
	}
	return false
}

// resolveURL makes href absolute against base. Unparsable input returns href as is.
func resolveURL(base, href string) string {
	h, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return href
	}
	b, err := url.Parse(base)
	if err != nil || h.IsAbs() {
		return h.String()
	}
	return b.ResolveReference(h).String()
}
