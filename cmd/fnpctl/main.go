// Command fnpctl is a terminal front end for the marketplace API.
//
//	fnpctl signin <email> <password>
//	fnpctl pricelists [-p 1] [-search term] [-client id]
//	fnpctl pricelist <id>
//	fnpctl grades <category>
//
// FNP_API_URL selects the server (default http://localhost:8080) and FNP_TOKEN carries the bearer token.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/viper"

	"fnp-marketplace/client"
	"fnp-marketplace/pricing"
	"fnp-marketplace/utils"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "fnpctl:", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	if len(args) == 0 {
		return errors.New("usage: fnpctl signin|pricelists|pricelist|grades ...")
	}

	v := viper.New()
	v.SetEnvPrefix("FNP")
	v.AutomaticEnv()
	v.SetDefault("API_URL", "http://localhost:8080")

	c, err := client.New(v.GetString("API_URL"), client.WithToken(v.GetString("TOKEN")))
	if err != nil {
		return err
	}
	defer c.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	switch cmd, rest := args[0], args[1:]; cmd {
	case "signin":
		return signIn(ctx, c, rest, out)
	case "pricelists":
		return listPriceLists(ctx, c, rest, out)
	case "pricelist":
		return showPriceList(ctx, c, rest, out)
	case "grades":
		return showGrades(ctx, c, rest, out)
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func signIn(ctx context.Context, c *client.Client, args []string, out io.Writer) error {
	if len(args) != 2 {
		return errors.New("usage: fnpctl signin <email> <password>")
	}
	resp, err := c.SignIn(ctx, args[0], args[1])
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "signed in as %s (%s)\nexport FNP_TOKEN=%s\n", resp.User.Email, resp.User.Role, resp.Token)
	return nil
}

func listPriceLists(ctx context.Context, c *client.Client, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("pricelists", flag.ContinueOnError)
	fs.SetOutput(out)
	page := fs.Int("p", 1, "page number, starting at 1")
	search := fs.String("search", "", "search by client name")
	clientID := fs.String("client", "", "only this client's price lists")
	if err := fs.Parse(args); err != nil {
		return err
	}

	q := client.NewListQuery().WithSearch(*search).WithFilter("client_id", *clientID).WithPage(*page)
	result, err := c.ListPriceLists(ctx, q)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCLIENT\tEFFECTIVE\tBASIS\tCATEGORIES")
	for _, l := range result.Data {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\n",
			l.ID, l.ClientName, l.EffectiveDate.Format(pricing.DateLayout), l.PricingBasis.Label(), len(l.VisibleCategories()))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	last := utils.NewPage(q.Page(), 0).LastPage(result.Total)
	fmt.Fprintf(out, "page %d of %d (%d price lists)\n", q.Page(), last, result.Total)
	return nil
}

func showPriceList(ctx context.Context, c *client.Client, args []string, out io.Writer) error {
	if len(args) != 1 {
		return errors.New("usage: fnpctl pricelist <id>")
	}
	b, err := c.PriceListBreakdown(ctx, args[0])
	if errors.Is(err, client.ErrNotFound) {
		return fmt.Errorf("price list %s does not exist", args[0])
	}
	if err != nil {
		return err
	}
	writeBreakdown(out, b)
	return nil
}

func writeBreakdown(out io.Writer, b *pricing.PriceListBreakdown) {
	fmt.Fprintf(out, "%s (%s)\nEffective %s, %s\n", b.ClientName, b.ClientSpecialization, b.EffectiveDate, b.PricingBasis)
	if len(b.Categories) == 0 {
		fmt.Fprintln(out, "\nNo categories are priced on this list.")
		return
	}
	for _, cat := range b.Categories {
		fmt.Fprintf(out, "\n%s\n", cat.Label)
		tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "CODE\tGRADE\tDELIVERED\tCOLLECTED")
		for _, row := range cat.Rows {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", row.Code, row.Label, row.Delivered, row.Collected)
		}
		tw.Flush()
	}
}

func showGrades(ctx context.Context, c *client.Client, args []string, out io.Writer) error {
	if len(args) != 1 {
		return errors.New("usage: fnpctl grades <category>")
	}
	grades, err := c.Grades(ctx, args[0])
	if err != nil {
		return err
	}
	if len(grades) == 0 {
		fmt.Fprintf(out, "no grades for %q\n", args[0])
		return nil
	}
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CODE\tKEY\tLABEL")
	for _, g := range grades {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", g.Code, g.Key, g.Label)
	}
	return tw.Flush()
}
