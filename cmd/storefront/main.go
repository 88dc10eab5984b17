// Command storefront is the terminal client for the TechMobile shop. It
// keeps cart, wishlist, and session state under a local state dir and
// talks to the backend API for everything else.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"techmobile/internal/config"
	"techmobile/internal/domain"
	"techmobile/internal/storefront/api"
	"techmobile/internal/storefront/cart"
	"techmobile/internal/storefront/catalog"
	"techmobile/internal/storefront/kv"
	"techmobile/internal/storefront/wishlist"
	"github.com/joho/godotenv"
)

const sessionKey = "userInfo"

type app struct {
	cfg      config.ClientConfig
	logger   *log.Logger
	store    kv.Store
	client   *api.Client
	cart     *cart.Service
	wishlist *wishlist.Service
	catalog  *catalog.Store
}

func main() {
	_ = godotenv.Load()
	cfg := config.ClientFromEnv()
	logger := log.New(os.Stderr, "[storefront] ", log.LstdFlags)

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	store, err := kv.NewFileStore(cfg.StateDir)
	if err != nil {
		logger.Fatalf("init state dir: %v", err)
	}

	a := &app{
		cfg:      cfg,
		logger:   logger,
		store:    store,
		client:   api.New(cfg.APIBaseURL, nil),
		cart:     cart.New(store, logger),
		wishlist: wishlist.New(store, logger),
		catalog:  catalog.NewStore(),
	}

	// Rehydrate the session so authenticated commands carry the token.
	var session api.Session
	if err := store.Load(sessionKey, &session); err == nil && session.Token != "" {
		a.client.SetToken(session.Token)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := a.run(ctx, os.Args[1], os.Args[2:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: storefront <command> [flags]

commands:
  browse      list products (-category -brand -search -min -max -sort)
  brands      list brand options (-category)
  cart        add|rm|update|show|clear
  wishlist    toggle|show|clear
  checkout    place the order and empty the cart
  login       -email -password
  register    -name -email -password
  logout
  subscribe   -email
  add-product admin product entry`)
}

func (a *app) run(ctx context.Context, command string, args []string) error {
	switch command {
	case "browse":
		return a.runBrowse(ctx, args)
	case "brands":
		return a.runBrands(ctx, args)
	case "cart":
		return a.runCart(ctx, args)
	case "wishlist":
		return a.runWishlist(ctx, args)
	case "checkout":
		return a.runCheckout()
	case "login":
		return a.runLogin(ctx, args)
	case "register":
		return a.runRegister(ctx, args)
	case "logout":
		return a.store.Delete(sessionKey)
	case "subscribe":
		return a.runSubscribe(ctx, args)
	case "add-product":
		return a.runAddProduct(ctx, args)
	default:
		usage()
		return fmt.Errorf("unknown command %q", command)
	}
}

// loadCatalog populates the catalog store from the backend once per run.
func (a *app) loadCatalog(ctx context.Context) error {
	products, err := a.client.FetchProducts(ctx, "")
	if err != nil {
		return err
	}
	a.catalog.SetProducts(products)
	return nil
}

func (a *app) runBrowse(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("browse", flag.ExitOnError)
	var (
		category = fs.String("category", catalog.CategoryAll, "category filter")
		brand    = fs.String("brand", "", "brand filter")
		search   = fs.String("search", "", "search term")
		minCents = fs.Int64("min", 0, "min price in cents")
		maxCents = fs.Int64("max", catalog.DefaultMaxPriceCents, "max price in cents")
		sortBy   = fs.String("sort", catalog.SortRelevance, "relevance|newest|price-asc|price-desc")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := a.loadCatalog(ctx); err != nil {
		return err
	}

	f := catalog.NewFilterState()
	f.Category = *category
	f.Search = *search
	f.PriceMinCents = *minCents
	f.PriceMaxCents = *maxCents
	f.Sort = *sortBy
	if *brand != "" {
		f.Brands = []string{*brand}
	}

	products := a.catalog.Display(f)
	fmt.Printf("%d items found\n", len(products))
	printProducts(products, a.wishlist)
	return nil
}

func (a *app) runBrands(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("brands", flag.ExitOnError)
	category := fs.String("category", catalog.CategoryAll, "category filter")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := a.loadCatalog(ctx); err != nil {
		return err
	}
	for _, b := range a.catalog.BrandOptions(*category) {
		fmt.Println(b)
	}
	return nil
}

func (a *app) runCart(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("cart: missing subcommand (add|rm|update|show|clear)")
	}
	switch args[0] {
	case "add":
		fs := flag.NewFlagSet("cart add", flag.ExitOnError)
		qty := fs.Int("qty", 1, "quantity to add")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		if fs.NArg() != 1 {
			return errors.New("cart add: product id required")
		}
		p, err := a.findProduct(ctx, fs.Arg(0))
		if err != nil {
			return err
		}
		a.cart.AddItem(*p, *qty)
	case "rm":
		if len(args) != 2 {
			return errors.New("cart rm: product id required")
		}
		a.cart.RemoveItem(args[1])
	case "update":
		if len(args) != 3 {
			return errors.New("cart update: product id and delta required")
		}
		delta, err := strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("cart update: bad delta %q", args[2])
		}
		a.cart.UpdateQuantity(args[1], delta)
	case "clear":
		a.cart.Clear()
	case "show":
	default:
		return fmt.Errorf("cart: unknown subcommand %q", args[0])
	}
	printCart(a.cart)
	return nil
}

func (a *app) runWishlist(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("wishlist: missing subcommand (toggle|show|clear)")
	}
	switch args[0] {
	case "toggle":
		if len(args) != 2 {
			return errors.New("wishlist toggle: product id required")
		}
		p, err := a.findProduct(ctx, args[1])
		if err != nil {
			return err
		}
		a.wishlist.Toggle(*p)
	case "clear":
		a.wishlist.Clear()
	case "show":
	default:
		return fmt.Errorf("wishlist: unknown subcommand %q", args[0])
	}
	fmt.Printf("%d saved\n", a.wishlist.Size())
	printProducts(a.wishlist.Items(), nil)
	return nil
}

func (a *app) runCheckout() error {
	if a.cart.Count() == 0 {
		return errors.New("cart is empty")
	}
	fmt.Printf("order placed: %d items, total %s\n", a.cart.Count(), formatCents(a.cart.Subtotal()))
	a.cart.Clear()
	return nil
}

func (a *app) runLogin(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	if err := fs.Parse(args); err != nil {
		return err
	}
	session, err := a.client.Login(ctx, *email, *password)
	if err != nil {
		return err
	}
	if err := a.store.Save(sessionKey, session); err != nil {
		a.logger.Printf("session persist failed: %v", err)
	}
	fmt.Printf("logged in as %s\n", session.Email)
	return nil
}

func (a *app) runRegister(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	name := fs.String("name", "", "display name")
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	if err := fs.Parse(args); err != nil {
		return err
	}
	session, err := a.client.Register(ctx, *name, *email, *password)
	if err != nil {
		return err
	}
	if err := a.store.Save(sessionKey, session); err != nil {
		a.logger.Printf("session persist failed: %v", err)
	}
	fmt.Printf("registered as %s\n", session.Email)
	return nil
}

func (a *app) runSubscribe(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("subscribe", flag.ExitOnError)
	email := fs.String("email", "", "newsletter email")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := a.client.Subscribe(ctx, *email); err != nil {
		return err
	}
	fmt.Println("subscribed")
	return nil
}

func (a *app) runAddProduct(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("add-product", flag.ExitOnError)
	var (
		title       = fs.String("title", "", "product title")
		brand       = fs.String("brand", "", "brand")
		category    = fs.String("category", "", "category")
		priceCents  = fs.Int64("price", 0, "price in cents")
		origCents   = fs.Int64("original-price", 0, "original price in cents (0 = none)")
		imageURL    = fs.String("image-url", "", "image URL")
		imageFile   = fs.String("image-file", "", "image file to upload")
		description = fs.String("description", "", "description")
		storage     = fs.String("storage", "", "storage spec")
		ram         = fs.String("ram", "", "ram spec")
		camera      = fs.String("camera", "", "camera spec")
		battery     = fs.String("battery", "", "battery spec")
		badges      = fs.String("badges", "", "comma-separated badges")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}

	in := api.CreateProductInput{
		Title:       *title,
		Brand:       *brand,
		Category:    *category,
		PriceCents:  *priceCents,
		ImageURL:    *imageURL,
		ImagePath:   *imageFile,
		Description: *description,
		Specs: domain.ProductSpecs{
			Storage: *storage,
			RAM:     *ram,
			Camera:  *camera,
			Battery: *battery,
		},
	}
	if *origCents > 0 {
		in.OriginalPriceCents = origCents
	}
	if *badges != "" {
		in.Badges = splitBadges(*badges)
	}

	created, err := a.client.CreateProduct(ctx, in)
	if err != nil {
		return err
	}
	fmt.Printf("created product %s (%s)\n", created.Title, created.ID)
	return nil
}

func (a *app) findProduct(ctx context.Context, id string) (*domain.Product, error) {
	if err := a.loadCatalog(ctx); err != nil {
		return nil, err
	}
	for _, p := range a.catalog.Products() {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, fmt.Errorf("product %s not found", id)
}

func printProducts(products []domain.Product, wl *wishlist.Service) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	for _, p := range products {
		saved := ""
		if wl != nil && wl.Contains(p.ID) {
			saved = "*"
		}
		price := formatCents(p.PriceCents)
		if p.Discounted() {
			price += " (was " + formatCents(*p.OriginalPriceCents) + ")"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s%s\n", p.ID, p.Brand, p.Title, p.Category, price, saved)
	}
	w.Flush()
}

func printCart(c *cart.Service) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	for _, line := range c.Lines() {
		fmt.Fprintf(w, "%s\t%s\tx%d\t%s\n",
			line.Product.ID, line.Product.Title, line.Quantity,
			formatCents(line.Product.PriceCents*int64(line.Quantity)))
	}
	w.Flush()
	fmt.Printf("%d items, subtotal %s\n", c.Count(), formatCents(c.Subtotal()))
}

func formatCents(cents int64) string {
	return fmt.Sprintf("$%d.%02d", cents/100, cents%100)
}

func splitBadges(raw string) []string {
	var out []string
	for _, b := range strings.Split(raw, ",") {
		if b = strings.TrimSpace(b); b != "" {
			out = append(out, b)
		}
	}
	return out
}
