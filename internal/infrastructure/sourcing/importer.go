package sourcing

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"regexp"
	"strings"
	"time"

	"talentflow/internal/pkg/workerpool"
	"talentflow/internal/usecase"

	"github.com/gocolly/colly/v2"
	"github.com/google/uuid"
)

// Target describes one external talent board to pull candidate cards from.
// Selectors default to permissive values so a sparse config still imports.
type Target struct {
	SourceName    string
	ListURL       string
	CardSelector  string
	NameSelector  string
	EmailSelector string
	LinkSelector  string
}

type candidateCard struct {
	Name      string
	Email     string
	ResumeRef string
}

// Submitter is the slice of the application workflow the importer needs.
type Submitter interface {
	Submit(ctx context.Context, in usecase.SubmitApplicationInput) (usecase.ApplicationItem, error)
}

type Importer struct {
	apps   Submitter
	logger *log.Logger
}

func NewImporter(apps Submitter, logger *log.Logger) *Importer {
	if logger == nil {
		logger = log.Default()
	}
	return &Importer{apps: apps, logger: logger}
}

type Report struct {
	Scanned  int
	Imported int
	Skipped  int
}

var emailRe = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)

// Import scrapes each target's listing page and submits one application per
// usable candidate card under the given requisition. Cards without an email
// are skipped; duplicate emails within a run are submitted once.
func (im *Importer) Import(ctx context.Context, requisitionID uuid.UUID, targets []Target, workers int) (Report, error) {
	if im == nil || im.apps == nil {
		return Report{}, fmt.Errorf("nil importer")
	}
	if requisitionID == uuid.Nil {
		return Report{}, fmt.Errorf("missing requisition id")
	}
	if workers <= 0 {
		workers = 4
	}

	var report Report
	for _, t := range targets {
		t := t
		if strings.TrimSpace(t.SourceName) == "" || strings.TrimSpace(t.ListURL) == "" {
			continue
		}
		if strings.TrimSpace(t.CardSelector) == "" {
			t.CardSelector = "li, article, .candidate"
		}

		cards, err := im.scrapeListing(ctx, t)
		if err != nil {
			im.logger.Printf("component=sourcing action=list source=%s status=error err=%v", t.SourceName, err)
			continue
		}
		report.Scanned += len(cards)

		seen := make(map[string]struct{}, len(cards))

		pool := workerpool.New(workers, workers*2)
		pool.SetRateLimit(3)
		results := pool.Run(ctx)

		for _, c := range cards {
			c := c
			if c.Email == "" {
				report.Skipped++
				continue
			}
			key := strings.ToLower(c.Email)
			if _, dup := seen[key]; dup {
				report.Skipped++
				continue
			}
			seen[key] = struct{}{}

			pool.Submit(func(ctx context.Context) error {
				_, err := im.apps.Submit(ctx, usecase.SubmitApplicationInput{
					RequisitionID:  requisitionID,
					CandidateName:  c.Name,
					CandidateEmail: c.Email,
					ResumeRef:      c.ResumeRef,
					Source:         t.SourceName,
				})
				return err
			})
		}

		pool.Close()
		for res := range results {
			if res.Err != nil {
				report.Skipped++
				im.logger.Printf("component=sourcing action=submit source=%s status=error err=%v", t.SourceName, res.Err)
				continue
			}
			report.Imported++
		}
	}

	im.logger.Printf("component=sourcing action=import requisition=%s scanned=%d imported=%d skipped=%d",
		requisitionID, report.Scanned, report.Imported, report.Skipped)
	return report, nil
}

func (im *Importer) scrapeListing(ctx context.Context, t Target) ([]candidateCard, error) {
	allowed := hostFromURL(t.ListURL)
	var c *colly.Collector
	if allowed == "" {
		c = colly.NewCollector()
	} else {
		c = colly.NewCollector(colly.AllowedDomains(allowed))
	}
	_ = c.Limit(&colly.LimitRule{DomainGlob: "*", Parallelism: 2, RandomDelay: 850 * time.Millisecond, Delay: 450 * time.Millisecond})

	cards := make([]candidateCard, 0)

	c.OnHTML(t.CardSelector, func(e *colly.HTMLElement) {
		card := candidateCard{}
		if sel := strings.TrimSpace(t.NameSelector); sel != "" {
			card.Name = strings.TrimSpace(e.DOM.Find(sel).Text())
		}
		if sel := strings.TrimSpace(t.EmailSelector); sel != "" {
			card.Email = strings.TrimSpace(e.DOM.Find(sel).Text())
		}
		if card.Email == "" {
			card.Email = emailRe.FindString(e.Text)
		}
		if sel := strings.TrimSpace(t.LinkSelector); sel != "" {
			if href := strings.TrimSpace(e.DOM.Find(sel).AttrOr("href", "")); href != "" {
				card.ResumeRef = e.Request.AbsoluteURL(href)
			}
		}
		if card.Name == "" && card.Email == "" {
			return
		}
		cards = append(cards, card)
	})

	var reqErr error
	c.OnError(func(r *colly.Response, err error) {
		reqErr = err
	})

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	if err := c.Visit(t.ListURL); err != nil {
		return nil, err
	}
	c.Wait()
	if reqErr != nil {
		return nil, reqErr
	}
	return cards, nil
}

func hostFromURL(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return ""
	}
	return u.Host
}
