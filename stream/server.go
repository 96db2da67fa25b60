package stream

import (
	"net/http"
	"time"
)

// indexPage shows the stream in a browser.
const indexPage = `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>julia</title></head>
<body style="margin:0;background:#000">
<img id="frame" style="display:block;margin:auto;max-height:100vh">
<script>
const img = document.getElementById("frame");
const ws = new WebSocket((location.protocol === "https:" ? "wss://" : "ws://") + location.host + "/ws");
ws.binaryType = "blob";
ws.onmessage = (e) => {
  const url = URL.createObjectURL(e.data);
  img.onload = () => URL.revokeObjectURL(url);
  img.src = url;
};
</script>
</body>
</html>
`

// NewMux returns a mux serving the websocket endpoint at /ws and a viewer
// page at /.
func NewMux(h *Hub) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/ws", h)
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(indexPage))
	})
	return mux
}

// NewServer returns an HTTP server for h listening on addr.
func NewServer(addr string, h *Hub) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           NewMux(h),
		ReadHeaderTimeout: 5 * time.Second,
	}
}
