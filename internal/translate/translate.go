// Package translate renders the human-readable text of this module: the
// sentinel error messages of bus, cart and emu, and the warnings the CPU
// and loader write to their log.Logger. Keys are en-US fmt format strings;
// the printer for the host locale substitutes catalog entries where one
// exists and localizes number formatting.
//
// Trace lines and disassembly are fixed formats and do not go through here.
package translate

import (
	"log"

	"github.com/jeandeaual/go-locale"
	"golang.org/x/text/message"
)

// fallback is used when the host reports no locale.
const fallback = "en-US"

var printer *message.Printer

func init() {
	locales, err := locale.GetLocales()
	if err != nil {
		log.Printf("gbcore: detecting locale: %v", err)
	}
	if len(locales) == 0 {
		locales = []string{fallback}
	}
	printer = message.NewPrinter(message.MatchLanguage(locales...))
}

// From formats key with args for the host locale. Packages bind it as
// `var f = translate.From` and wrap every message they log or return.
func From(key message.Reference, args ...any) string {
	return printer.Sprintf(key, args...)
}
