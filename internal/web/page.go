package web

// pageTemplate renders the list. Task text goes through html/template
// escaping and is never interpreted as markup.
const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>To-Do List</title>
<style>
  body { font-family: sans-serif; max-width: 40em; margin: 2em auto; }
  ul { list-style: none; padding: 0; }
  li { display: flex; gap: .5em; align-items: center; padding: .3em 0; }
  li.checked .task-text { text-decoration: line-through; color: #888; }
  .task-text { flex: 1; }
  .notice { color: #b00; }
  form { display: inline; margin: 0; }
</style>
</head>
<body>
<h1>To-Do List</h1>
{{if .Notice}}<p class="notice" role="alert">{{.Notice}}</p>{{end}}
<form method="post" action="/tasks" id="add-form">
  <input type="text" name="text" id="input-box" placeholder="Add your text" autofocus>
  <button type="submit">Add</button>
</form>
<ul id="list-container">
{{- range $i, $t := .Tasks}}
  <li{{if $t.Completed}} class="checked"{{end}}>
    <form method="post" action="/tasks/{{$i}}/toggle"><button type="submit" class="toggle-btn">{{if $t.Completed}}&#x2611;{{else}}&#x2610;{{end}}</button></form>
    <span class="task-text">{{$t.Text}}</span>
    <form method="post" action="/tasks/{{$i}}/edit" class="edit-form"><input type="text" name="text" value="{{$t.Text}}"><button type="submit" class="edit-btn">&#x270E;</button></form>
    <form method="post" action="/tasks/{{$i}}/delete"><button type="submit" class="delete-btn">&#x00D7;</button></form>
  </li>
{{- end}}
</ul>
</body>
</html>
`
