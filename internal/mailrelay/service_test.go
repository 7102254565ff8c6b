package mailrelay

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brt-intranet/backend/internal/tickets"
	apperrors "github.com/brt-intranet/backend/pkg/errors"
	pkgmail "github.com/brt-intranet/backend/pkg/mail"
)

type fakeMailer struct {
	sent []pkgmail.Message
	err  error
}

func (f *fakeMailer) Send(_ context.Context, msg pkgmail.Message) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

type fakeFiles struct {
	folders []string
	err     error
}

func (f *fakeFiles) Save(_ context.Context, folder, _, _ string, body io.Reader, _ int64) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	_, _ = io.Copy(io.Discard, body)
	f.folders = append(f.folders, folder)
	return "uploads/" + folder + "/x", nil
}

func newTestService(m *fakeMailer, files *fakeFiles) *Service {
	svc := NewService(m, files, "web@example.com", []string{"soporte@example.com"}, nil)
	svc.now = func() time.Time { return time.Date(2025, 3, 7, 9, 0, 0, 0, time.UTC) }
	svc.intn = func(int) int { return 35 }
	return svc
}

func TestSendTicketForm(t *testing.T) {
	m := &fakeMailer{}
	files := &fakeFiles{}
	svc := newTestService(m, files)

	code, err := svc.SendTicketForm(context.Background(), tickets.Form{
		Email: "ana@example.com", Asunto: "No imprime", Detalle: "línea 1\n<b>línea 2</b>",
	}, &Upload{Filename: "captura.png", ContentType: "image/png", Data: []byte("png")})
	require.NoError(t, err)

	assert.Equal(t, "BRT250307999", code)
	require.Len(t, m.sent, 1)
	msg := m.sent[0]
	assert.Equal(t, `"Formulario Web" <web@example.com>`, msg.From)
	assert.Equal(t, []string{"soporte@example.com"}, msg.To)
	assert.Equal(t, "Nuevo requerimiento: No imprime (Código: BRT250307999)", msg.Subject)
	assert.Contains(t, msg.HTML, "<p><strong>Código:</strong> BRT250307999</p>")
	assert.Contains(t, msg.HTML, "línea 1<br>&lt;b&gt;línea 2&lt;/b&gt;")
	require.Len(t, msg.Attachments, 1)
	assert.Equal(t, "captura.png", msg.Attachments[0].Filename)
	assert.Equal(t, []string{"formularios"}, files.folders)
}

func TestSendTicketFormMailFailure(t *testing.T) {
	svc := newTestService(&fakeMailer{err: errors.New("535 auth failed")}, &fakeFiles{})

	_, err := svc.SendTicketForm(context.Background(), tickets.Form{Asunto: "x"}, nil)

	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrMail))
	assert.Equal(t, MsgTicketFailed, apperrors.FromError(err).Message)
}

func TestSendContactKeepsUploadWithoutAttaching(t *testing.T) {
	m := &fakeMailer{}
	files := &fakeFiles{}
	svc := newTestService(m, files)

	code, err := svc.SendContact(context.Background(), ContactForm{
		Nombre: "Ana", Email: "ana@example.com", Asunto: "Consulta", Mensaje: "Hola",
	}, &Upload{Filename: "cv.pdf", Data: []byte("pdf")})
	require.NoError(t, err)

	assert.Regexp(t, `^BRT\d{6}[A-Z0-9]{3}$`, code)
	require.Len(t, m.sent, 1)
	assert.Equal(t, `"Contacto Web" <web@example.com>`, m.sent[0].From)
	assert.Equal(t, "Nuevo mensaje de contacto: Consulta", m.sent[0].Subject)
	assert.Contains(t, m.sent[0].HTML, "<p><strong>Nombre:</strong> Ana</p>")
	assert.Empty(t, m.sent[0].Attachments)
	assert.Equal(t, []string{"contacto"}, files.folders)
}

func TestUploadFailureDoesNotBlockMail(t *testing.T) {
	m := &fakeMailer{}
	svc := newTestService(m, &fakeFiles{err: errors.New("disk full")})

	_, err := svc.SendContact(context.Background(), ContactForm{Asunto: "x"}, &Upload{Filename: "a.txt"})

	require.NoError(t, err)
	assert.Len(t, m.sent, 1)
}

func TestSenderWithoutFromFallsBackToMailer(t *testing.T) {
	m := &fakeMailer{}
	svc := NewService(m, nil, "", []string{"soporte@example.com"}, nil)

	_, err := svc.SendContact(context.Background(), ContactForm{Asunto: "x"}, &Upload{Filename: "a.pdf"})
	require.NoError(t, err)
	assert.Equal(t, "", m.sent[0].From)
}

func postMultipart(t *testing.T, r http.Handler, path string, fields map[string]string, withFile bool) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if withFile {
		fw, err := mw.CreateFormFile("archivo", "adjunto.pdf")
		require.NoError(t, err)
		_, _ = fw.Write([]byte("%PDF"))
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func newTestRouter(svc *Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(svc, 1<<20)
	r := gin.New()
	r.POST("/api/formulario", h.TicketForm)
	r.POST("/api/contacto", h.Contact)
	return r
}

func TestFormularioEndpoint(t *testing.T) {
	m := &fakeMailer{}
	r := newTestRouter(newTestService(m, &fakeFiles{}))

	w := postMultipart(t, r, "/api/formulario", map[string]string{"email": "ana@example.com", "asunto": "Error"}, true)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Correo enviado correctamente.","codigo":"BRT250307999"}`, w.Body.String())
	require.Len(t, m.sent, 1)
	assert.Equal(t, []byte("%PDF"), m.sent[0].Attachments[0].Data)
}

func TestFormularioEndpointFailure(t *testing.T) {
	r := newTestRouter(newTestService(&fakeMailer{err: errors.New("timeout")}, &fakeFiles{}))

	w := postMultipart(t, r, "/api/formulario", map[string]string{"asunto": "Error"}, false)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"message":"Error al enviar el correo."}`, w.Body.String())
}

func TestContactoEndpoint(t *testing.T) {
	r := newTestRouter(newTestService(&fakeMailer{}, &fakeFiles{}))

	w := postMultipart(t, r, "/api/contacto", map[string]string{"nombre": "Ana", "asunto": "Hola"}, false)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Mensaje enviado correctamente.","codigo":"BRT250307999"}`, w.Body.String())

	r = newTestRouter(newTestService(&fakeMailer{err: errors.New("down")}, &fakeFiles{}))
	w = postMultipart(t, r, "/api/contacto", map[string]string{"asunto": "Hola"}, false)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"message":"Error al enviar el mensaje."}`, w.Body.String())
}
