package templates

import (
	"context"
	"io"
	"net/url"

	"github.com/a-h/templ"

	"github.com/JonMunkholm/swimmeet/internal/core"
	"github.com/JonMunkholm/swimmeet/internal/ui"
)

// PhotoFieldID is the element the photo upload partial replaces.
const PhotoFieldID = "photo-field"

// FormData is the add and edit swimmer form. An empty ID means add.
type FormData struct {
	ID           string
	Input        core.SwimmerInput
	Errors       core.ValidationErrors
	Teams        []core.Team
	PhotoEnabled bool
	// Message is a form-level error shown above the fields.
	Message string
}

// Editing reports whether the form updates an existing swimmer.
func (d FormData) Editing() bool {
	return d.ID != ""
}

// Action is the URL the form posts to.
func (d FormData) Action() string {
	if d.Editing() {
		return "/swimmers/" + url.PathEscape(d.ID)
	}
	return "/swimmers"
}

const (
	inputClass = "w-full rounded-md border px-3 py-2 text-sm"
	labelClass = "mb-1 block text-sm font-medium"
)

// SwimmerForm renders the add or edit form.
func SwimmerForm(d FormData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := ui.NewWriter(ctx, w)
		title := "Add swimmer"
		submit := "create swimmer"
		if d.Editing() {
			title = "Edit swimmer"
			submit = "save changes"
		}

		hw.Raw(`<div class="mx-auto max-w-2xl rounded-lg border bg-white p-6 shadow-sm"><h1 class="mb-6 text-xl font-bold">`)
		hw.Text(title)
		hw.Raw(`</h1>`)

		if d.Message != "" {
			hw.Raw(`<div role="alert" class="mb-4 rounded-md border border-red-200 bg-red-50 px-4 py-2 text-sm text-red-800" data-form-error>`)
			hw.Text(d.Message)
			hw.Raw(`</div>`)
		}

		hw.Raw(`<form method="post" class="space-y-6" data-swimmer-form`)
		hw.Attr("action", d.Action())
		hw.Attr("hx-post", d.Action())
		hw.Attr("hx-target", "#"+ContentID)
		hw.Raw(`>`)

		if d.PhotoEnabled {
			hw.Component(PhotoField(d.Input.Name, d.Input.PhotoURL, ""))
		} else if d.Input.PhotoURL != "" {
			hw.Raw(`<input type="hidden" name="photo_url"`)
			hw.Attr("value", d.Input.PhotoURL)
			hw.Raw(`>`)
		}

		hw.Raw(`<div class="grid gap-4 sm:grid-cols-2">`)
		writeInput(hw, "name", "Name", "text", d.Input.Name, d.Errors, `class="sm:col-span-2"`, "required maxlength=\"50\"")

		writeField(hw, "gender_code", "Gender", d.Errors, "", func() {
			hw.Raw(`<select id="gender_code" name="gender_code" required`)
			hw.Attr("class", inputClass)
			hw.Raw(`><option value="">select</option>`)
			for _, g := range core.SwimmerGenders() {
				writeChoice(hw, string(g), g.Label(), d.Input.GenderCode)
			}
			hw.Raw(`</select>`)
		})

		writeInput(hw, "birth_date", "Birth date", "date", d.Input.BirthDate, d.Errors, "", "required")

		writeField(hw, "team_id", "Team", d.Errors, `class="sm:col-span-2"`, func() {
			hw.Raw(`<select id="team_id" name="team_id"`)
			hw.Attr("class", inputClass)
			hw.Raw(`>`)
			selected := d.Input.TeamID
			if selected == "" {
				selected = core.TeamNone
			}
			writeChoice(hw, core.TeamNone, "no team", selected)
			for _, t := range d.Teams {
				writeChoice(hw, t.ID, t.Name, selected)
			}
			hw.Raw(`</select>`)
		})
		hw.Raw(`</div>`)

		hw.Raw(`<fieldset class="grid gap-4 sm:grid-cols-2"><legend class="mb-2 text-sm font-semibold text-gray-700">Contact</legend>`)
		writeInput(hw, "contact_email", "E-mail", "email", d.Input.ContactEmail, d.Errors, "", "")
		writeInput(hw, "contact_phone", "Phone", "tel", d.Input.ContactPhone, d.Errors, "", "")
		hw.Raw(`</fieldset>`)

		hw.Raw(`<fieldset class="grid gap-4 sm:grid-cols-2"><legend class="mb-2 text-sm font-semibold text-gray-700">Emergency contact</legend>`)
		writeInput(hw, "emergency_contact_name", "Name", "text", d.Input.EmergencyContactName, d.Errors, "", "")
		writeInput(hw, "emergency_contact_phone", "Phone", "tel", d.Input.EmergencyContactPhone, d.Errors, "", "")
		hw.Raw(`</fieldset>`)

		hw.Raw(`<div class="flex justify-end gap-2">`)
		hw.Raw(`<a href="/swimmers" hx-get="/swimmers"`)
		hw.Attr("hx-target", "#"+ContentID)
		hw.Raw(` hx-push-url="true" class="rounded-md border px-4 py-2 text-sm hover:bg-gray-100">Cancel</a>`)
		hw.Raw(`<button type="submit" class="rounded-md bg-blue-600 px-4 py-2 text-sm font-medium text-white hover:bg-blue-700">`)
		hw.Text(submit)
		hw.Raw(`</button></div>`)

		hw.Raw(`</form></div>`)
		return hw.Err()
	})
}

// PhotoField is the photo picker. Choosing a file uploads it immediately
// and the response replaces the field with the stored URL in a hidden
// input. errMsg is shown under the picker.
func PhotoField(name, photoURL, errMsg string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := ui.NewWriter(ctx, w)
		hw.Raw(`<div class="flex items-center gap-4"`)
		hw.Attr("id", PhotoFieldID)
		hw.Raw(`>`)
		hw.Component(Avatar(name, photoURL, "h-20 w-20"))

		hw.Raw(`<div class="space-y-2"><input type="hidden" name="photo_url"`)
		hw.Attr("value", photoURL)
		hw.Raw(`>`)

		label := "upload photo"
		if photoURL != "" {
			label = "change photo"
		}
		hw.Raw(`<label class="inline-flex cursor-pointer items-center gap-2 rounded-md border px-3 py-1.5 text-sm hover:bg-gray-100">`)
		hw.Component(ui.Icon(ui.IconUpload, "h-4 w-4"))
		hw.Text(label)
		hw.Raw(`<input type="file" name="photo" accept="image/*" class="sr-only" hx-post="/api/photos" hx-encoding="multipart/form-data" hx-trigger="change"`)
		hw.Attr("hx-target", "#"+PhotoFieldID)
		hw.Raw(` hx-swap="outerHTML"></label>`)

		if photoURL != "" {
			hw.Raw(`<button type="button" class="ml-2 inline-flex items-center gap-1 rounded-md px-3 py-1.5 text-sm text-red-600 hover:bg-red-50"`)
			hw.Attr("hx-delete", "/api/photos?"+url.Values{"url": {photoURL}, "name": {name}}.Encode())
			hw.Attr("hx-target", "#"+PhotoFieldID)
			hw.Raw(` hx-swap="outerHTML" data-remove-photo>`)
			hw.Component(ui.Icon(ui.IconX, "h-4 w-4"))
			hw.Raw(`remove</button>`)
		}

		hw.Raw(`<p class="text-xs text-gray-500">images only, up to 5MB</p>`)
		if errMsg != "" {
			hw.Raw(`<p class="text-xs text-red-600" data-field-error="photo">`)
			hw.Text(errMsg)
			hw.Raw(`</p>`)
		}
		hw.Raw(`</div></div>`)
		return hw.Err()
	})
}

// writeField wraps a control with its label and error message. wrapAttrs
// is trusted markup added to the wrapper.
func writeField(hw *ui.Writer, name, label string, errs core.ValidationErrors, wrapAttrs string, control func()) {
	hw.Raw(`<div`)
	if wrapAttrs != "" {
		hw.Raw(" " + wrapAttrs)
	}
	hw.Raw(`><label`)
	hw.Attr("for", name)
	hw.Attr("class", labelClass)
	hw.Raw(`>`)
	hw.Text(label)
	hw.Raw(`</label>`)
	control()
	if msg := errs.For(name); msg != "" {
		hw.Raw(`<p class="mt-1 text-xs text-red-600"`)
		hw.Attr("data-field-error", name)
		hw.Raw(`>`)
		hw.Text(msg)
		hw.Raw(`</p>`)
	}
	hw.Raw(`</div>`)
}

func writeInput(hw *ui.Writer, name, label, typ, value string, errs core.ValidationErrors, wrapAttrs, extra string) {
	writeField(hw, name, label, errs, wrapAttrs, func() {
		hw.Raw(`<input`)
		hw.Attr("id", name)
		hw.Attr("name", name)
		hw.Attr("type", typ)
		hw.Attr("value", value)
		hw.Attr("class", ui.Class(inputClass, templ.KV("border-red-500", errs.For(name) != "")))
		if extra != "" {
			hw.Raw(" " + extra)
		}
		hw.Raw(`>`)
	})
}

func writeChoice(hw *ui.Writer, value, label, selected string) {
	hw.Raw(`<option`)
	hw.Attr("value", value)
	if value == selected {
		hw.Raw(` selected`)
	}
	hw.Raw(`>`)
	hw.Text(label)
	hw.Raw(`</option>`)
}
