package seed

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	appModels "github.com/yigit/registrar/internal/app/models"
	appRepos "github.com/yigit/registrar/internal/app/repositories"
	"github.com/yigit/registrar/internal/db"
	"github.com/yigit/registrar/internal/pkg/apperrors"
	"github.com/yigit/registrar/internal/pkg/auth"
)

// Transactor runs fn inside a single database transaction
type Transactor interface {
	WithTransaction(ctx context.Context, fn db.TransactionFn) error
}

// Options selects the demo account created alongside the catalog
type Options struct {
	StudentEmail string
	Password     string
}

// DefaultOptions is the account used by the demo catalog
var DefaultOptions = Options{
	StudentEmail: "ada@ucsc.edu",
	Password:     "registrar",
}

var (
	spring2021 = appModels.Quarter{Year: 2021, Season: appModels.SeasonSpring}
	winter2021 = appModels.Quarter{Year: 2021, Season: appModels.SeasonWinter}

	cse183 = appModels.CatalogClass{
		Number:      "CSE 183",
		Name:        "Web Applications",
		Description: "Design and implementation of web applications: servers, databases, and browser-side code.",
	}

	demoInstructor = appModels.Instructor{
		Email:     "luca@ucsc.edu",
		FirstName: "Luca",
		LastName:  "de Alfaro",
	}
)

// CreateDefaultData loads the demo catalog: quarters 2021 Spring and Winter,
// CSE 183 offered in Spring only, one instructor, one student and the
// student's login account. Running it again leaves the data unchanged apart
// from resetting the account password.
func CreateDefaultData(ctx context.Context, database Transactor, opts Options, lgr zerolog.Logger) error {
	opts.StudentEmail = strings.ToLower(strings.TrimSpace(opts.StudentEmail))
	if opts.StudentEmail == "" || opts.Password == "" {
		return apperrors.NewValidationError("seed account needs an email and a password")
	}

	hash, err := auth.HashPassword(opts.Password)
	if err != nil {
		return fmt.Errorf("failed to hash seed password: %w", err)
	}

	lgr.Info().Msg("Checking/Creating default catalog data...")
	return database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		repos := appRepos.NewRepositories(tx)

		spring, winter := spring2021, winter2021
		for _, q := range []*appModels.Quarter{&spring, &winter} {
			if err := repos.CatalogRepository.UpsertQuarter(ctx, q); err != nil {
				return err
			}
		}

		class := cse183
		if err := repos.CatalogRepository.UpsertCatalogClass(ctx, &class); err != nil {
			return err
		}

		instructor, err := ensureInstructor(ctx, repos.CatalogRepository, demoInstructor)
		if err != nil {
			return err
		}

		existing, err := repos.OfferingRepository.ListOfferingsForClass(ctx, class.Number, spring.Year, spring.Season)
		if err != nil {
			return err
		}
		if len(existing) == 0 {
			offering := &appModels.ClassOffering{
				CatalogClassID: class.ID,
				QuarterID:      spring.ID,
				Number:         1,
				TaughtBy:       &instructor.ID,
				Active:         true,
			}
			if err := repos.CatalogRepository.CreateOffering(ctx, offering); err != nil {
				return err
			}
			lgr.Info().Int64("offeringID", offering.ID).Str("class", class.Number).Str("quarter", spring.String()).Msg("Seeded class offering")
		}

		if err := ensureStudent(ctx, repos.StudentRepository, opts.StudentEmail); err != nil {
			return err
		}

		user := &appModels.User{Email: opts.StudentEmail, Password: hash, IsActive: true}
		if err := repos.UserRepository.UpsertUser(ctx, user); err != nil {
			return err
		}

		lgr.Info().Str("email", opts.StudentEmail).Msg("Default catalog data ready")
		return nil
	})
}

func ensureInstructor(ctx context.Context, repo *appRepos.CatalogRepository, want appModels.Instructor) (*appModels.Instructor, error) {
	instructor, err := repo.GetInstructorByEmail(ctx, want.Email)
	if err == nil {
		return instructor, nil
	}
	if !errors.Is(err, apperrors.ErrResourceNotFound) {
		return nil, err
	}

	instructor = &want
	if err := repo.CreateInstructor(ctx, instructor); err != nil {
		return nil, err
	}
	return instructor, nil
}

func ensureStudent(ctx context.Context, repo *appRepos.StudentRepository, email string) error {
	_, err := repo.GetStudentByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, appRepos.ErrStudentNotFound) {
		return err
	}

	name := strings.SplitN(email, "@", 2)[0]
	if name == "" {
		name = "demo"
	}
	student := &appModels.Student{
		Email:     email,
		FirstName: strings.ToUpper(name[:1]) + name[1:],
		LastName:  "Student",
		SUID:      "0000001",
	}
	return repo.CreateStudent(ctx, student)
}
