// Command portal is a terminal client for the research-team portal.  It
// drives the same session, messaging and request state the web UI uses,
// persisting it through the shared mirror so separate invocations see the
// same world.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/rami151/laboissimlocal-sub000/internal/api"
	"github.com/rami151/laboissimlocal-sub000/internal/config"
	"github.com/rami151/laboissimlocal-sub000/internal/content"
	"github.com/rami151/laboissimlocal-sub000/internal/message"
	"github.com/rami151/laboissimlocal-sub000/internal/model"
	"github.com/rami151/laboissimlocal-sub000/internal/project"
	"github.com/rami151/laboissimlocal-sub000/internal/request"
	"github.com/rami151/laboissimlocal-sub000/internal/session"
	"github.com/rami151/laboissimlocal-sub000/internal/store"
)

const usage = `usage: portal <command> [flags]

commands:
  login         -email -password        sign in and persist the session
  logout                                drop the session
  whoami                                show the signed-in identity
  team                                  refresh and print the roster
  set-role      -user -role             change a member's role (admin)
  set-status    -user -status           ban or reactivate a member (admin)
  send          -to -subject -body      send an internal message
  inbox                                 list conversations with unread counts
  conversation  -with                   print one conversation, oldest first
  mark-read     -id                     mark a message as read
  contact       -name -email -subject -category -body
                                        record an incoming contact message
  contact-status -id -status            move a contact message (read/replied)
  requests                              list account requests
  request-account -name -email -password -reason
                                        file an account request
  review-request -id -status            approve or reject an account request
  projects                              refresh and print projects
  validate      -id                     validate a project (admin)
  request-deletion -id -reason          ask for a validated project's removal
  deletions                             list deletion requests (admin)
  review-deletion -id -approve -notes   settle one deletion request (admin)
  content                               print the site content
  notifications                         show unread/pending counters
`

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg := config.LoadClient()

	// Prefer the Redis mirror when one is reachable; otherwise persist to
	// the JSON file so the portal works with no services at all.
	var mirror store.Mirror
	if rc := config.NewRedisClient(); rc != nil {
		mirror = store.NewRedis(rc, "")
	} else {
		fm, err := store.NewFile(cfg.MirrorPath)
		if err != nil {
			log.Fatalf("open mirror %s: %v", cfg.MirrorPath, err)
		}
		mirror = fm
	}

	client := api.New(cfg.APIBaseURL)
	sess := session.New(client, mirror)
	msgs := message.New(sess, mirror)
	reqs := request.New(sess, mirror)
	site := content.New(client, mirror)
	projects := project.New(client)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	sess.Startup(ctx)

	p := portal{sess: sess, msgs: msgs, reqs: reqs, site: site, projects: projects}
	if err := p.run(ctx, os.Args[1], os.Args[2:]); err != nil {
		log.Fatal(err)
	}
}

type portal struct {
	sess     *session.Store
	msgs     *message.Index
	reqs     *request.Queues
	site     *content.Manager
	projects *project.Service
}

func (p *portal) run(ctx context.Context, cmd string, args []string) error {
	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	switch cmd {
	case "login":
		email := fs.String("email", "", "account email")
		password := fs.String("password", "", "account password")
		fs.Parse(args)
		if !p.sess.Login(ctx, *email, *password) {
			return fmt.Errorf("login failed for %s", *email)
		}
		me, _ := p.sess.Current()
		fmt.Printf("signed in as %s (%s)\n", me.Name, me.EffectiveRole())
		return nil

	case "logout":
		p.sess.Logout()
		fmt.Println("signed out")
		return nil

	case "whoami":
		me, ok := p.sess.Current()
		if !ok {
			return fmt.Errorf("not signed in")
		}
		fmt.Printf("%s <%s> role=%s status=%s admin=%v\n",
			me.Name, me.Email, me.EffectiveRole(), me.Status, me.IsEffectiveAdmin())
		return nil

	case "team":
		if err := p.sess.RefreshRoster(ctx); err != nil {
			log.Printf("roster refresh failed, showing mirrored copy: %v", err)
		}
		for _, m := range p.sess.Roster() {
			fmt.Printf("%-6s %-24s %-30s %s\n", m.ID, m.Name, m.Email, m.EffectiveRole())
		}
		return nil

	case "set-role":
		user := fs.String("user", "", "user id")
		role := fs.String("role", "", "member|admin|team_lead")
		fs.Parse(args)
		return p.sess.UpdateRole(ctx, *user, *role)

	case "set-status":
		user := fs.String("user", "", "user id")
		status := fs.String("status", "", "active|banned|pending")
		fs.Parse(args)
		return p.sess.SetStatus(ctx, *user, *status)

	case "send":
		to := fs.String("to", "", "receiver user id")
		subject := fs.String("subject", "", "subject line")
		body := fs.String("body", "", "message body")
		reply := fs.String("reply-to", "", "message id being answered")
		fs.Parse(args)
		m, ok := p.msgs.Send(*to, *subject, *body, *reply)
		if !ok {
			return fmt.Errorf("send failed: not signed in or unknown receiver")
		}
		fmt.Printf("sent %s in %s\n", m.ID, m.ConversationID)
		return nil

	case "inbox":
		for _, conv := range p.msgs.Conversations() {
			last := conv.LastMessage.CreatedAt.Format("2006-01-02 15:04")
			fmt.Printf("%-24s unread=%-3d last=%s %q\n",
				conv.UserName, conv.UnreadCount, last, conv.LastMessage.Subject)
		}
		return nil

	case "conversation":
		with := fs.String("with", "", "counterpart user id")
		fs.Parse(args)
		for _, m := range p.msgs.ConversationWith(*with) {
			marker := " "
			if m.Status == model.MessageUnread {
				marker = "*"
			}
			fmt.Printf("%s [%s] %s -> %s: %s\n",
				marker, m.CreatedAt.Format("2006-01-02 15:04"), m.SenderName, m.ReceiverName, m.Body)
		}
		return nil

	case "mark-read":
		id := fs.String("id", "", "message id")
		fs.Parse(args)
		p.msgs.MarkRead(*id)
		return nil

	case "contact":
		name := fs.String("name", "", "sender name")
		email := fs.String("email", "", "sender email")
		subject := fs.String("subject", "", "subject")
		category := fs.String("category", "", "category")
		body := fs.String("body", "", "message")
		fs.Parse(args)
		m := p.reqs.AddContactMessage(*name, *email, *subject, *category, *body)
		fmt.Printf("recorded contact message %s\n", m.ID)
		return nil

	case "contact-status":
		id := fs.String("id", "", "contact message id")
		status := fs.String("status", "", "new|read|replied")
		fs.Parse(args)
		if !p.reqs.SetContactStatus(*id, *status) {
			return fmt.Errorf("unknown contact message %s", *id)
		}
		return nil

	case "requests":
		for _, r := range p.reqs.AccountRequests() {
			fmt.Printf("%-6s %-24s %-30s %-8s %s\n", r.ID, r.Name, r.Email, r.Status, r.Reason)
		}
		return nil

	case "request-account":
		name := fs.String("name", "", "applicant name")
		email := fs.String("email", "", "applicant email")
		password := fs.String("password", "", "requested password")
		reason := fs.String("reason", "", "why access is needed")
		fs.Parse(args)
		r := p.reqs.AddAccountRequest(*name, *email, *password, *reason)
		fmt.Printf("filed account request %s\n", r.ID)
		return nil

	case "review-request":
		id := fs.String("id", "", "account request id")
		status := fs.String("status", "", "approved|rejected")
		fs.Parse(args)
		if !p.reqs.SetAccountRequestStatus(*id, *status) {
			return fmt.Errorf("unknown account request %s", *id)
		}
		return nil

	case "projects":
		if err := p.projects.Refresh(ctx); err != nil {
			return err
		}
		for _, pr := range p.projects.Projects() {
			state := "draft"
			if pr.IsValidated {
				state = "validated"
			}
			if pr.HasPendingDeletionRequest {
				state += ", deletion pending"
			}
			fmt.Printf("%-6s %-40s by %-20s [%s]\n", pr.ID, pr.Title, pr.CreatedBy.Name, state)
		}
		return nil

	case "validate":
		id := fs.String("id", "", "project id")
		fs.Parse(args)
		return p.projects.Validate(ctx, *id)

	case "request-deletion":
		id := fs.String("id", "", "project id")
		reason := fs.String("reason", "", "why the project should go")
		fs.Parse(args)
		return p.projects.RequestDeletion(ctx, *id, *reason)

	case "deletions":
		drs, err := p.projects.DeletionRequests(ctx)
		if err != nil {
			return err
		}
		for _, dr := range drs {
			fmt.Printf("%-6s %-40s by %-20s %-8s %s\n",
				dr.ID, dr.ProjectName, dr.RequestedBy.Name, dr.Status, dr.Reason)
		}
		return nil

	case "review-deletion":
		id := fs.String("id", "", "deletion request id")
		approve := fs.Bool("approve", false, "approve instead of reject")
		notes := fs.String("notes", "", "admin notes")
		fs.Parse(args)
		return p.projects.Review(ctx, *id, *approve, *notes)

	case "content":
		p.site.Refresh(ctx)
		sc := p.site.Content()
		fmt.Printf("%s | %s | %s | %s\n", sc.FooterTeamName, sc.ContactEmail, sc.ContactPhone, sc.ContactAddress)
		return nil

	case "notifications":
		n := p.reqs.Notifications()
		fmt.Printf("contact messages: %d new | account requests: %d pending | internal: %d unread\n",
			n.NewMessages, n.PendingRequests, p.msgs.UnreadCount(""))
		return nil

	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", cmd)
	}
}
