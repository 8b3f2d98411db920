package server

// indexHTML is a minimal chat page served at the root so the relay can be
// exercised from a browser without any extra assets.
const indexHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Nichirin</title>
<style>
  body { font-family: system-ui, sans-serif; max-width: 640px; margin: 2rem auto; padding: 0 1rem; }
  #log { border: 1px solid #ccc; border-radius: 6px; padding: 1rem; min-height: 240px; }
  .user { color: #226; margin: .4rem 0; }
  .bot { color: #262; margin: .4rem 0; }
  .error { color: #a22; margin: .4rem 0; }
  form { display: flex; gap: .5rem; margin-top: 1rem; }
  input { flex: 1; padding: .5rem; }
</style>
</head>
<body>
<h1>Nichirin</h1>
<div id="log"></div>
<form id="form">
  <input id="input" autocomplete="off" placeholder="Ask me something...">
  <button type="submit">Send</button>
</form>
<script>
const log = document.getElementById('log');
const form = document.getElementById('form');
const input = document.getElementById('input');
function append(cls, text) {
  const div = document.createElement('div');
  div.className = cls;
  div.textContent = text;
  log.appendChild(div);
  log.scrollTop = log.scrollHeight;
}
form.addEventListener('submit', async (e) => {
  e.preventDefault();
  const message = input.value.trim();
  if (!message) return;
  append('user', message);
  input.value = '';
  try {
    const res = await fetch('/api/chat', {
      method: 'POST',
      headers: {'Content-Type': 'application/json'},
      body: JSON.stringify({message})
    });
    const data = await res.json();
    if (data.reply) append('bot', data.reply);
    else append('error', data.error || 'unexpected response');
  } catch (err) {
    append('error', String(err));
  }
});
</script>
</body>
</html>
`
