package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mariovojnichajduk/SP-KP-Frontend/internal/api"
	"github.com/mariovojnichajduk/SP-KP-Frontend/internal/auth"
	"github.com/mariovojnichajduk/SP-KP-Frontend/internal/config"
	"github.com/mariovojnichajduk/SP-KP-Frontend/internal/db"
	"github.com/mariovojnichajduk/SP-KP-Frontend/internal/forms"
	"github.com/mariovojnichajduk/SP-KP-Frontend/internal/listings"
	"github.com/mariovojnichajduk/SP-KP-Frontend/internal/logging"
	"github.com/mariovojnichajduk/SP-KP-Frontend/internal/media"
	"github.com/mariovojnichajduk/SP-KP-Frontend/internal/notify"
	"github.com/mariovojnichajduk/SP-KP-Frontend/internal/session"
)

func main() {
	cmd := flag.String("cmd", "listings", "Command: login|verify|resend|register|logout|whoami|listings|my|show|create|update|delete|upload|rm-image|images|profile|update-profile|change-password|forgot|reset|categories|contact")
	email := flag.String("email", "", "Email address")
	password := flag.String("password", "", "Password")
	confirm := flag.String("confirm", "", "Password confirmation")
	oldPassword := flag.String("old-password", "", "Current password (change-password)")
	firstName := flag.String("first", "", "First name")
	lastName := flag.String("last", "", "Last name")
	phone := flag.String("phone", "", "Phone number")
	code := flag.String("code", "", "5-digit verification / reset code")

	id := flag.String("id", "", "Listing id")
	title := flag.String("title", "", "Listing title")
	description := flag.String("description", "", "Listing description")
	price := flag.Float64("price", 0, "Listing price")
	condition := flag.String("condition", "", "Condition: new|like_new|good|fair|poor")
	category := flag.String("category", "", "Category id")
	location := flag.String("location", "", "Location")

	search := flag.String("search", "", "Search term")
	minPrice := flag.Float64("min", -1, "Minimum price filter")
	maxPrice := flag.Float64("max", -1, "Maximum price filter")

	imageID := flag.String("image", "", "Image id (rm-image)")
	name := flag.String("name", "", "Your name (contact)")
	message := flag.String("message", "", "Message to the seller (contact)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, cleanup, err := logging.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer cleanup()

	database, err := db.Open(cfg.StatePath)
	if err != nil {
		logger.Error("failed to open state database", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close state database", "error", err)
		}
	}()

	sessions, err := session.NewStore(database, logger)
	if err != nil {
		logger.Error("failed to load session", "error", err)
		os.Exit(1)
	}

	client := api.New(cfg.APIURL,
		api.WithTokenSource(sessions),
		api.WithTimeout(time.Duration(cfg.HTTPTimeout)*time.Second),
		api.WithUnauthorizedHook(sessions.Invalidate),
		api.WithLogger(logger),
	)

	notifier := notify.Console{}
	flow := auth.NewFlow(client, sessions, notifier, logger)
	if sessions.Authenticated() {
		if claims, ok := sessions.Claims(); ok && claims.Expired(time.Now()) {
			logger.Warn("stored token looks expired", "expired_at", claims.ExpiresAt)
		}
	}

	ctx := context.Background()
	if err := run(ctx, *cmd, cfg, client, sessions, flow, notifier, logger, cliArgs{
		email: *email, password: *password, confirm: *confirm, oldPassword: *oldPassword,
		firstName: *firstName, lastName: *lastName, phone: *phone, code: *code,
		id: *id, title: *title, description: *description, price: *price,
		condition: *condition, category: *category, location: *location,
		search: *search, minPrice: *minPrice, maxPrice: *maxPrice,
		imageID: *imageID, name: *name, message: *message, files: flag.Args(),
	}); err != nil {
		os.Exit(1)
	}
}

type cliArgs struct {
	email, password, confirm, oldPassword string
	firstName, lastName, phone, code      string
	id, title, description                string
	price                                 float64
	condition, category, location         string
	search                                string
	minPrice, maxPrice                    float64
	imageID, name, message                string
	files                                 []string
}

func (a cliArgs) filters() api.ListingFilters {
	f := api.ListingFilters{CategoryID: a.category, Condition: a.condition}
	if a.minPrice >= 0 {
		min := a.minPrice
		f.MinPrice = &min
	}
	if a.maxPrice >= 0 {
		max := a.maxPrice
		f.MaxPrice = &max
	}
	return f
}

func run(ctx context.Context, cmd string, cfg *config.Config, client *api.Client,
	sessions *session.Store, flow *auth.Flow, notifier notify.Notifier,
	logger *slog.Logger, args cliArgs) error {
	switch cmd {
	case "login":
		if err := flow.Login(ctx, args.email, args.password); err != nil {
			return err
		}
		if flow.State() == auth.EmailUnverified {
			fmt.Printf("Enter the 5-digit code sent to %s with: -cmd verify -email %s -code NNNNN\n",
				flow.PendingEmail(), flow.PendingEmail())
		}
		return nil

	case "verify":
		return flow.Verify(ctx, args.code)

	case "resend":
		return flow.ResendCode(ctx)

	case "register":
		return flow.Register(ctx, api.RegisterData{
			Email:     args.email,
			Password:  args.password,
			FirstName: args.firstName,
			LastName:  args.lastName,
			Phone:     args.phone,
		}, args.confirm)

	case "logout":
		return flow.Logout()

	case "whoami":
		current := sessions.Current()
		if current == nil {
			fmt.Println("Not signed in")
			return nil
		}
		fmt.Printf("%s %s <%s>\n", current.User.FirstName, current.User.LastName, current.User.Email)
		if claims, ok := sessions.Claims(); ok && !claims.ExpiresAt.IsZero() {
			fmt.Printf("Token expires %s\n", claims.ExpiresAt.Format(time.RFC3339))
		}
		return nil

	case "listings", "my":
		scope := listings.AllActive()
		if cmd == "my" {
			current := sessions.Current()
			if current == nil {
				notifier.Error("Please sign in first")
				return fmt.Errorf("not signed in")
			}
			scope = listings.OwnedBy(current.User.ID)
		}
		controller := listings.NewController(client, notifier, logger, scope)
		if err := controller.ApplyFilter(ctx, args.filters()); err != nil {
			return err
		}
		if args.search != "" {
			if err := controller.ApplySearch(ctx, args.search); err != nil {
				return err
			}
		}
		if sessions.Authenticated() {
			_ = controller.RefreshOwnership(ctx)
		}
		printListings(controller)
		return nil

	case "show":
		fetcher := listings.NewDetailFetcher(client)
		listing, err := fetcher.Get(ctx, args.id)
		if err != nil {
			notifier.Error(api.ErrorMessage(err, "Failed to load listing"))
			return err
		}
		printListing(listing)
		return nil

	case "create":
		form := forms.NewListingForm(client, notifier, func(l *api.Listing) {
			fmt.Println("Created listing", l.ID)
		})
		form.Set(forms.ListingFields{
			Title:       args.title,
			Description: args.description,
			Price:       args.price,
			Condition:   api.ListingCondition(args.condition),
			CategoryID:  args.category,
			Location:    args.location,
		})
		_, err := form.SubmitCreate(ctx)
		return err

	case "update":
		form, err := forms.EditListingForm(ctx, client, notifier, args.id, nil)
		if err != nil {
			return err
		}
		fields := form.Fields()
		if args.title != "" {
			fields.Title = args.title
		}
		if args.description != "" {
			fields.Description = args.description
		}
		if args.price > 0 {
			fields.Price = args.price
		}
		if args.condition != "" {
			fields.Condition = api.ListingCondition(args.condition)
		}
		if args.category != "" {
			fields.CategoryID = args.category
		}
		if args.location != "" {
			fields.Location = args.location
		}
		form.Set(fields)
		_, err = form.SubmitUpdate(ctx)
		return err

	case "delete":
		controller := listings.NewController(client, notifier, logger, listings.AllActive())
		return controller.Remove(ctx, args.id)

	case "images", "upload", "rm-image":
		manager := media.NewManager(client, notifier, logger, args.id, cfg.MaxImages)
		if err := manager.Load(ctx); err != nil {
			return err
		}
		switch cmd {
		case "upload":
			files := make([]media.File, 0, len(args.files))
			for _, path := range args.files {
				data, err := os.ReadFile(path)
				if err != nil {
					notifier.Error("Failed to read " + path)
					return err
				}
				files = append(files, media.File{Name: filepath.Base(path), Data: data})
			}
			if err := manager.AddFiles(ctx, files); err != nil {
				return err
			}
		case "rm-image":
			if !confirmPrompt("Are you sure you want to delete this image?") {
				return nil
			}
			if err := manager.Remove(ctx, args.imageID); err != nil {
				return err
			}
		}
		for _, img := range manager.Images() {
			fmt.Printf("%s  order=%d  %s\n", img.ID, img.DisplayOrder, img.URL)
		}
		return nil

	case "profile":
		user, err := client.Profile(ctx)
		if err != nil {
			notifier.Error(api.ErrorMessage(err, "Failed to load profile"))
			return err
		}
		fmt.Printf("%s %s <%s> phone=%s verified=%v\n",
			user.FirstName, user.LastName, user.Email, user.Phone, user.IsVerified)
		return nil

	case "update-profile":
		form, err := forms.LoadProfileForm(ctx, client, notifier)
		if err != nil {
			return err
		}
		fields := form.Fields()
		if args.firstName != "" {
			fields.FirstName = args.firstName
		}
		if args.lastName != "" {
			fields.LastName = args.lastName
		}
		if args.phone != "" {
			fields.Phone = args.phone
		}
		form.Set(fields)
		_, err = form.Save(ctx)
		return err

	case "change-password":
		return flow.ChangePassword(ctx, api.ChangePasswordData{
			OldPassword:     args.oldPassword,
			NewPassword:     args.password,
			ConfirmPassword: args.confirm,
		})

	case "forgot":
		return flow.ForgotPassword(ctx, args.email)

	case "reset":
		return flow.ResetPassword(ctx, api.ResetPasswordData{
			Email:           args.email,
			ResetCode:       args.code,
			NewPassword:     args.password,
			ConfirmPassword: args.confirm,
		})

	case "categories":
		cats, err := client.Categories(ctx, nil)
		if err != nil {
			notifier.Error(api.ErrorMessage(err, "Failed to load categories"))
			return err
		}
		for _, cat := range cats {
			fmt.Printf("%s  %s\n", cat.ID, cat.Name)
		}
		return nil

	case "contact":
		err := client.ContactSeller(ctx, args.id, api.ContactMessage{
			Name:    args.name,
			Email:   args.email,
			Phone:   args.phone,
			Message: args.message,
		})
		if err != nil {
			notifier.Error(api.ErrorMessage(err, "Failed to contact seller"))
			return err
		}
		notifier.Success("Message sent to the seller")
		return nil

	default:
		fmt.Println("Unknown command:", cmd)
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func printListings(controller *listings.Controller) {
	if controller.Empty() {
		fmt.Println("No listings available at the moment.")
		return
	}
	for _, l := range controller.Listings() {
		owned := " "
		if controller.Owns(l.ID) {
			owned = "*"
		}
		fmt.Printf("%s %-36s  %-30s  %8.2f  %s\n", owned, l.ID, l.Title, l.Price, l.Condition)
	}
}

func printListing(l *api.Listing) {
	fmt.Printf("%s (%s)\n%s\nPrice: %.2f  Condition: %s  Views: %d\n",
		l.Title, l.Status, l.Description, l.Price, l.Condition, l.Views)
	if l.Location != "" {
		fmt.Println("Location:", l.Location)
	}
	if l.Category != nil {
		fmt.Println("Category:", l.Category.Name)
	}
	for _, img := range l.Images {
		fmt.Printf("  image %s order=%d %s\n", img.ID, img.DisplayOrder, img.URL)
	}
}

func confirmPrompt(question string) bool {
	fmt.Print(question + " [y/N] ")
	var answer string
	_, _ = fmt.Scanln(&answer)
	return strings.EqualFold(answer, "y") || strings.EqualFold(answer, "yes")
}
