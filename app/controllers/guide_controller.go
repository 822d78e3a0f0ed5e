package controllers

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sujit-baniya/flash"

	"github.com/shauncritzer/rewired/app/repository"
	"github.com/shauncritzer/rewired/internal/pkg/guide"
	"github.com/shauncritzer/rewired/internal/pkg/session"
	"github.com/shauncritzer/rewired/internal/pkg/usercontext"
)

// Session key for the email that unlocked the reading guide.
const guideEmailKey = "guide_email"

// guideEmail resolves the email the guide is unlocked for: the logged-in
// account first, then the email stored by the unlock form.
func guideEmail(c *fiber.Ctx) string {
	if email := usercontext.GetUserEmail(c); email != "" {
		return email
	}
	return session.GetSessionValue(c, guideEmailKey)
}

// HandleGuide renders the reading guide for unlocked visitors and the email
// prompt for everyone else. Saved reflections are loaded so the page picks
// up where the reader left off.
func HandleGuide(c *fiber.Ctx) error {
	email := guideEmail(c)
	if email == "" {
		return c.Render("pages/guide_locked", viewData(c, "Reading Guide | Rewired"))
	}

	reflections, err := guide.NewStore().Get(email)
	if err != nil {
		log.Printf("guide: load reflections for %s: %v", email, err)
		reflections = guide.Reflections{}
	}

	data := viewData(c, "Reading Guide | Rewired")
	data["Email"] = email
	data["Reflections"] = reflections

	return c.Render("pages/guide", data)
}

// HandleGuideUnlock checks the submitted email against the subscriber list.
// A known subscriber unlocks the guide; anyone else is pointed at the free
// reading guide download.
func HandleGuideUnlock(c *fiber.Ctx) error {
	email := strings.ToLower(strings.TrimSpace(c.FormValue("email")))
	if email == "" {
		fm := fiber.Map{
			"type":    "error",
			"message": "Please enter your email address.",
		}
		return flash.WithError(c, fm).Redirect("/guide")
	}

	repos := repository.GetGlobalRepositories()
	if _, err := repos.Subscriber.GetByEmail(email); err != nil {
		fm := fiber.Map{
			"type":    "error",
			"message": "We couldn't find that email. Grab the free reading guide first and you're in.",
		}
		return flash.WithError(c, fm).Redirect("/guide")
	}

	if err := session.SetSessionValue(c, guideEmailKey, email); err != nil {
		log.Printf("guide unlock: save session: %v", err)
	}

	return c.Redirect("/guide", fiber.StatusSeeOther)
}
