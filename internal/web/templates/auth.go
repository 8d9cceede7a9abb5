package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/JonMunkholm/swimmeet/internal/ui"
)

// callbackScript reads the access token the provider put in the URL
// fragment and exchanges it for a session cookie.
const callbackScript = `(function () {
  var params = new URLSearchParams(window.location.hash.slice(1));
  var token = params.get("access_token");
  var status = document.getElementById("auth-status");
  if (!token) { status.textContent = params.get("error_description") || "sign-in failed"; return; }
  var body = new URLSearchParams({ access_token: token });
  fetch("/auth/session", { method: "POST", body: body, credentials: "same-origin" })
    .then(function (res) {
      if (!res.ok) { throw new Error("session rejected"); }
      window.location.replace("/");
    })
    .catch(function () { status.textContent = "sign-in failed"; });
})();`

// AuthCallback is the page the identity provider redirects back to.
func AuthCallback() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := ui.NewWriter(ctx, w)
		hw.Raw(`<div class="flex flex-col items-center justify-center py-24 text-center"><p id="auth-status" class="text-gray-600">signing in…</p></div>`)
		hw.Raw(`<script`)
		hw.Attr("nonce", templ.GetNonce(ctx))
		hw.Raw(`>` + callbackScript + `</script>`)
		return hw.Err()
	})
}
