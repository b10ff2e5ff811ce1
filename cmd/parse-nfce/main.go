// Command parse-nfce runs the receipt extractors against a local file and
// dumps what they found. Debugging tool for new SEFAZ layouts: nothing is
// persisted.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/ygglist/ygglist/internal/catalog"
	"github.com/ygglist/ygglist/internal/nfce"
)

func main() {
	htmlMode := flag.Bool("html", false, "treat the input as a saved receipt page instead of pasted text")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: parse-nfce [-html] <file>")
		os.Exit(2)
	}

	raw, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		log.Fatalf("error: %v", err)
	}

	var receipt *nfce.Receipt
	if *htmlMode {
		receipt, err = nfce.ExtractHTML(string(raw))
	} else {
		receipt, err = nfce.ExtractText(string(raw))
	}
	if err != nil {
		log.Fatalf("error: %v", err)
	}

	fmt.Printf("Loja:       %s\n", receipt.Store)
	fmt.Printf("Data:       %s\n", orDash(receipt.DateISO))
	fmt.Printf("Estratégia: %s (%s)\n", receipt.Strategy, receipt.Confidence)
	fmt.Printf("Total:      R$ %s\n", receipt.RawTotal.StringFixed(2))

	fmt.Printf("\nItens (%d):\n", len(receipt.Items))
	for i, item := range receipt.Items {
		category := catalog.GuessCategory(item.Name)
		fmt.Printf("%3d. %-40s %8s %-3s R$ %10s  [%s]\n",
			i+1, truncate(item.Name, 40), item.Qty.String(), item.Unit,
			item.Price.StringFixed(2), category)
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return strings.TrimSpace(s[:n-1]) + "…"
}
