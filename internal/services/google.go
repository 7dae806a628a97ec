package services

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	intconfig "transportes-backend/internal/config"
	"transportes-backend/pkg/logger"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

// tokenSource builds an OAuth token source from the stored refresh token.
func tokenSource(ctx context.Context, env intconfig.Env, scopes ...string) oauth2.TokenSource {
	config := &oauth2.Config{
		ClientID:     env.GoogleClientID,
		ClientSecret: env.GoogleClientSecret,
		Endpoint:     google.Endpoint,
		Scopes:       scopes,
	}
	token := &oauth2.Token{
		RefreshToken: env.GoogleRefreshToken,
		Expiry:       time.Now(), // fuerza el refresh
	}
	return config.TokenSource(ctx, token)
}

// GmailEnviador implements EnviadorCorreo over the Gmail API.
type GmailEnviador struct {
	servicio  *gmail.Service
	remitente string
	log       logger.Logger
}

// NewGmailEnviador returns nil (canal deshabilitado) when OAuth credentials
// are not configured.
func NewGmailEnviador(ctx context.Context, env intconfig.Env, log logger.Logger) (*GmailEnviador, error) {
	if env.GoogleClientID == "" || env.GoogleRefreshToken == "" || env.CorreoRemitente == "" {
		return nil, nil
	}
	ts := tokenSource(ctx, env, gmail.GmailSendScope)
	servicio, err := gmail.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, err
	}
	return &GmailEnviador{servicio: servicio, remitente: env.CorreoRemitente, log: log}, nil
}

func (g *GmailEnviador) Enviar(ctx context.Context, para, asunto, cuerpo string) error {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", g.remitente)
	fmt.Fprintf(&b, "To: %s\r\n", para)
	fmt.Fprintf(&b, "Subject: %s\r\n", asunto)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n\r\n")
	b.WriteString(cuerpo)

	msg := &gmail.Message{
		Raw: base64.URLEncoding.EncodeToString([]byte(b.String())),
	}
	_, err := g.servicio.Users.Messages.Send("me", msg).Context(ctx).Do()
	return err
}

// CalendarioGoogle implements CreadorCalendario over the Calendar API.
type CalendarioGoogle struct {
	servicio     *calendar.Service
	calendarioID string
	log          logger.Logger
}

func NewCalendarioGoogle(ctx context.Context, env intconfig.Env, log logger.Logger) (*CalendarioGoogle, error) {
	if env.GoogleClientID == "" || env.GoogleRefreshToken == "" {
		return nil, nil
	}
	ts := tokenSource(ctx, env, calendar.CalendarEventsScope)
	servicio, err := calendar.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, err
	}
	return &CalendarioGoogle{servicio: servicio, calendarioID: env.CalendarioID, log: log}, nil
}

// CrearEvento inserts a one-hour event at the pickup time.
func (c *CalendarioGoogle) CrearEvento(ctx context.Context, ev EventoReserva) (string, error) {
	inicio, err := time.ParseInLocation("2006-01-02 15:04", ev.Fecha+" "+ev.Hora, time.Local)
	if err != nil {
		return "", fmt.Errorf("fecha/hora invalida para evento: %w", err)
	}
	fin := inicio.Add(time.Hour)

	evento := &calendar.Event{
		Summary:     ev.Titulo,
		Description: ev.Detalle,
		Location:    ev.Municipio,
		Start:       &calendar.EventDateTime{DateTime: inicio.Format(time.RFC3339)},
		End:         &calendar.EventDateTime{DateTime: fin.Format(time.RFC3339)},
	}
	creado, err := c.servicio.Events.Insert(c.calendarioID, evento).Context(ctx).Do()
	if err != nil {
		return "", err
	}
	return creado.Id, nil
}
