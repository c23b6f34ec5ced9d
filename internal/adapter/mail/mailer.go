package mail

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"mime"
	"mime/multipart"
	"net"
	"net/smtp"
	"net/textproto"
	"strings"
	"time"

	"asset-approval-backend/pkg/id"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/html"
)

const (
	TemplateActivation    = "activation"
	TemplateResetPassword = "reset-password"
)

//go:embed templates/*.html
var templateFS embed.FS

type Config struct {
	Host string
	Port string
	User string
	Pass string
	From string
}

// SendFunc matches smtp.SendMail.
type SendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

type Mailer struct {
	cfg  Config
	tpl  *template.Template
	send SendFunc
	now  func() time.Time
	log  *logrus.Entry
}

func New(cfg Config) (*Mailer, error) {
	tpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse mail templates: %w", err)
	}
	return &Mailer{
		cfg:  cfg,
		tpl:  tpl,
		send: smtp.SendMail,
		now:  time.Now,
		log:  logrus.WithField("component", "mail"),
	}, nil
}

// WithSender swaps the SMTP transport.
func (m *Mailer) WithSender(f SendFunc) *Mailer {
	m.send = f
	return m
}

func (m *Mailer) Render(name string, data map[string]any) (string, error) {
	var buf bytes.Buffer
	if err := m.tpl.ExecuteTemplate(&buf, name+".html", data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return buf.String(), nil
}

// Send renders the named template and delivers it as multipart/alternative (text + html).
func (m *Mailer) Send(ctx context.Context, to, subject, name string, data map[string]any) error {
	if strings.TrimSpace(to) == "" {
		return fmt.Errorf("mail: empty recipient")
	}
	body, err := m.Render(name, data)
	if err != nil {
		return err
	}
	msg, err := m.compose(to, subject, body)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	var auth smtp.Auth
	if m.cfg.User != "" {
		auth = smtp.PlainAuth("", m.cfg.User, m.cfg.Pass, m.cfg.Host)
	}
	addr := net.JoinHostPort(m.cfg.Host, m.cfg.Port)
	if err := m.send(addr, auth, m.cfg.From, []string{to}, msg); err != nil {
		return fmt.Errorf("smtp send to %s: %w", to, err)
	}
	m.log.WithFields(logrus.Fields{"to": to, "template": name}).Info("mail sent")
	return nil
}

func (m *Mailer) compose(to, subject, htmlBody string) ([]byte, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	host := m.cfg.Host
	if host == "" {
		host = "localhost"
	}
	headers := []string{
		"From: " + m.cfg.From,
		"To: " + to,
		"Subject: " + mime.QEncoding.Encode("utf-8", subject),
		"Date: " + m.now().Format(time.RFC1123Z),
		"Message-ID: <" + id.New() + "@" + host + ">",
		"MIME-Version: 1.0",
		"Content-Type: multipart/alternative; boundary=" + mw.Boundary(),
	}
	head := strings.Join(headers, "\r\n") + "\r\n\r\n"

	parts := []struct{ ctype, body string }{
		{"text/plain; charset=utf-8", htmlToText(htmlBody)},
		{"text/html; charset=utf-8", htmlBody},
	}
	for _, p := range parts {
		w, err := mw.CreatePart(textproto.MIMEHeader{"Content-Type": {p.ctype}})
		if err != nil {
			return nil, err
		}
		if _, err := w.Write([]byte(p.body)); err != nil {
			return nil, err
		}
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}
	return append([]byte(head), buf.Bytes()...), nil
}

// htmlToText flattens rendered HTML into the plain-text alternative.
func htmlToText(src string) string {
	doc, err := html.Parse(strings.NewReader(src))
	if err != nil {
		return src
	}

	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			b.WriteString(collapseSpace(n.Data))
		case html.ElementNode:
			switch n.Data {
			case "style", "script", "head":
				return
			case "p", "div", "br", "h1", "h2", "h3", "h4", "h5", "h6", "tr", "table":
				b.WriteString("\n")
			case "li":
				b.WriteString("\n- ")
			case "td", "th":
				b.WriteString(" ")
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		if n.Type == html.ElementNode && n.Data == "a" {
			for _, a := range n.Attr {
				if a.Key == "href" {
					b.WriteString(" (" + a.Val + ")")
				}
			}
		}
	}
	walk(doc)

	lines := strings.Split(b.String(), "\n")
	out := lines[:0]
	for _, l := range lines {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return strings.Join(out, "\n")
}

func collapseSpace(s string) string {
	f := strings.Fields(s)
	if len(f) == 0 {
		return ""
	}
	out := strings.Join(f, " ")
	if s[0] == ' ' || s[0] == '\n' || s[0] == '\t' {
		out = " " + out
	}
	if last := s[len(s)-1]; last == ' ' || last == '\n' || last == '\t' {
		out += " "
	}
	return out
}
